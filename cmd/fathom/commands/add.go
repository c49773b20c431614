package commands

import (
	"context"

	"github.com/fathom-search/fathom/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

func NewAddCommand() *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   "add <name> <path>",
		Short: "Register a project directory under a unique name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithRunner(cmd.Context(), &flags,
				func(_ context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunAdd(args[0], args[1])
				})
		},
	}
	flags.register(cmd)
	return cmd
}
