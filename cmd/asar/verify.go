package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meigma/asar"
)

var errVerifyFailed = errors.New("verification failed")

func newVerifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify ARCHIVE",
		Short: "Verify every packed file against its digests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := a.open(args[0], asar.WithBlockCheck(a.v.GetBool("block-check")))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var checked, failed int
			for name, entry := range archive.Root().Walk() {
				if entry.Unpacked() {
					continue
				}
				checked++
				_, res, err := archive.Extract(entry)
				if err == nil {
					err = res.Err()
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
				}
			}

			fmt.Fprintf(out, "%d files checked, %d failed\n", checked, failed)
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", errVerifyFailed, failed, checked)
			}
			return nil
		},
	}
	cmd.Flags().Bool("block-check", true, "verify per-block digests as well as the whole-file digest")
	return cmd
}
