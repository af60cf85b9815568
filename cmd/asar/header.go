package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/asar"
)

func newHeaderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header ARCHIVE",
		Short: "Print the raw JSON header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read archive: %w", err)
			}
			doc, err := asar.HeaderJSON(data)
			if err != nil {
				return err
			}
			a.logger.Debug("read header", "size", len(doc))

			if a.v.GetBool("pretty") {
				var buf bytes.Buffer
				if err := json.Indent(&buf, doc, "", "    "); err != nil {
					return fmt.Errorf("%w: %v", asar.ErrMalformedMetadata, err)
				}
				doc = buf.Bytes()
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(doc); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out)
			return err
		},
	}
	cmd.Flags().Bool("pretty", false, "indent the JSON")
	return cmd
}
