package main

import (
	"os"

	"github.com/fathom-search/fathom/cmd/fathom/commands"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fathom",
		Short: "Semantic, literal and structural code search over registered projects",
	}

	rootCmd.AddCommand(
		commands.NewAddCommand(),
		commands.NewRemoveCommand(),
		commands.NewListCommand(),
		commands.NewIndexCommand(),
		commands.NewIndexScipCommand(),
		commands.NewSearchCommand(),
		commands.NewMCPCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
