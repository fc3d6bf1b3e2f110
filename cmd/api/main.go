package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/recipekeeper/core/cmd/api/commands"
)

// @title Recipe Keeper API
// @version 1.0
// @description CRUD over a collection of recipes kept in a JSON file

// @host localhost:8000
// @BasePath /

func main() {
	rootCmd := &cobra.Command{
		Use:          "recipekeeper",
		Short:        "Recipe Keeper API Server",
		Long:         `Recipe Keeper serves create, read, update and delete operations over a collection of recipes persisted to a single JSON file.`,
		SilenceUsage: true,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
