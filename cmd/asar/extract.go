package main

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/spf13/cobra"

	"github.com/meigma/asar"
	"github.com/meigma/asar/internal/file"
	"github.com/meigma/asar/internal/filesink"
	"github.com/meigma/asar/internal/pathutil"
)

func newExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract ARCHIVE",
		Short: "Extract files from an archive",
		Long: `Extract packed files whose base name matches --pattern.

Each file is checked against its recorded digests. A mismatch is logged
and the file is still written unless --force-validate is set. Unpacked
files live outside the archive and are skipped.`,
		Example: `  asar extract app.asar --pattern 'preload*.js' --out ./out`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.extract(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.String("pattern", "*", "glob matched against each file's base name")
	flags.StringP("out", "o", ".", "destination directory")
	flags.Bool("force-validate", false, "fail when a file does not match its digests")
	flags.Bool("block-check", true, "verify per-block digests as well as the whole-file digest")
	flags.Bool("overwrite", false, "overwrite existing files")
	return cmd
}

func (a *app) extract(cmd *cobra.Command, archivePath string) error {
	pattern := a.v.GetString("pattern")
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	archive, err := a.open(archivePath,
		asar.WithStrict(a.v.GetBool("force-validate")),
		asar.WithBlockCheck(a.v.GetBool("block-check")),
	)
	if err != nil {
		return err
	}

	sink := filesink.New(a.v.GetString("out"),
		filesink.WithOverwrite(a.v.GetBool("overwrite")),
		filesink.WithPreserveMode(true),
	)

	var written, skipped int
	for name, entry := range archive.Root().Walk() {
		if ok, _ := path.Match(pattern, pathutil.Base(name)); !ok {
			continue
		}
		logger := a.logger.With(slog.String("path", name))
		if entry.Unpacked() {
			logger.Warn("skipping unpacked file")
			skipped++
			continue
		}
		if !sink.ShouldWrite(name) {
			logger.Info("skipping existing file")
			skipped++
			continue
		}

		content, _, err := archive.Extract(entry)
		if err != nil {
			return fmt.Errorf("extract %s: %w", name, err)
		}
		mode := file.NewInfo(entry, pathutil.Base(name)).Mode()
		if err := sink.Write(name, content, mode); err != nil {
			return err
		}
		logger.Debug("extracted file", slog.Uint64("size", entry.Size))
		written++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "extracted %d files, skipped %d\n", written, skipped)
	return nil
}
