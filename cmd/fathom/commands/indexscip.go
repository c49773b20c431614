package commands

import (
	"context"

	"github.com/fathom-search/fathom/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

func NewIndexScipCommand() *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   "index-scip <name>",
		Short: "Build a project's structural (SCIP) index via scip-java",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithRunner(cmd.Context(), &flags,
				func(ctx context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunIndexScip(ctx, args[0])
				})
		},
	}
	flags.register(cmd)
	return cmd
}
