package commands

import (
	"context"

	"github.com/fathom-search/fathom/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

func NewIndexCommand() *cobra.Command {
	var (
		flags   storeFlags
		rebuild bool
	)

	cmd := &cobra.Command{
		Use:   "index <name>",
		Short: "Build or refresh a project's semantic index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithRunner(cmd.Context(), &flags,
				func(ctx context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunIndex(ctx, args[0], rebuild)
				})
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&rebuild, "rebuild", false,
		"Drop the project's collection first, clearing entries orphaned by moved or renamed methods")
	return cmd
}
