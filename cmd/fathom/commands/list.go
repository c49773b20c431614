package commands

import (
	"context"

	"github.com/fathom-search/fathom/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

func NewListCommand() *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithRunner(cmd.Context(), &flags,
				func(_ context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunList()
				})
		},
	}
	flags.register(cmd)
	return cmd
}
