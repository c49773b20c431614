package commands

import (
	"context"

	"github.com/fathom-search/fathom/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

func NewRemoveCommand() *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a project from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithRunner(cmd.Context(), &flags,
				func(_ context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunRemove(args[0])
				})
		},
	}
	flags.register(cmd)
	return cmd
}
