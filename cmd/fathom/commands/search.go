package commands

import (
	"context"
	"fmt"

	"github.com/fathom-search/fathom/cmd/cmdsfx"
	"github.com/fathom-search/fathom/internal/constants"
	"github.com/fathom-search/fathom/internal/models"
	"github.com/spf13/cobra"
)

func NewSearchCommand() *cobra.Command {
	var (
		flags      storeFlags
		searchType string
		topK       int
	)

	cmd := &cobra.Command{
		Use:   "search <name> <query>",
		Short: "Search a registered project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modality, ok := models.ParseModality(searchType)
			if !ok {
				return fmt.Errorf(
					"unknown search type %q (use semantic, literal, or structural)",
					searchType,
				)
			}
			return runWithRunner(cmd.Context(), &flags,
				func(ctx context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunSearch(ctx, args[0], modality, args[1], topK)
				})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&searchType, "type", string(models.ModalitySemantic),
		"Search modality: semantic, literal, or structural")
	cmd.Flags().IntVar(&topK, "top-k", constants.DefaultTopK,
		"Maximum number of semantic matches to return")
	return cmd
}
