package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list ARCHIVE",
		Aliases: []string{"ls"},
		Short:   "List archive contents",
		Long: `List the entries of the archive's top-level folder in header order.

With --recursive, every file path in the archive is listed instead and
folder names are omitted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := a.open(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for p := range archive.Root().Paths(a.v.GetBool("recursive")) {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("recursive", "r", false, "list every file path")
	return cmd
}
