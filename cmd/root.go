package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kdsh",
	Short: "kdsh - Narrative consistency verification tool",
	Long: `kdsh answers "is claim C about character X consistent with book B?"
using retrieval-augmented verification.

It chunks plain-text books into overlapping token windows, embeds and
indexes them for similarity search, retrieves the passages most relevant
to a claim, and reduces those passages plus the claim to a binary
consistency verdict via a reasoning model.`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
