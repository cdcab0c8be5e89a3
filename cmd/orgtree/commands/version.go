package commands

import (
	"github.com/erraggy/orgtree"
	"github.com/erraggy/orgtree/internal/cliutil"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the orgtree version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if verbose {
				cliutil.Writef(cmd.OutOrStdout(), "%s\n", orgtree.BuildInfo())
				return
			}
			cliutil.Writef(cmd.OutOrStdout(), "orgtree %s\n", orgtree.Version())
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include commit, build time and Go version")
	return cmd
}
