// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "readme-bot",
	Short: "A CLI tool that writes README files for your GitHub repositories.",
	Long: `readme-bot reads the source files of every repository owned by the
authenticated GitHub account, asks Gemini to write a README.md for the ones
that have none (or that received commits today) and commits the result.

GITHUB_TOKEN and GEMINI_API_KEY must be set, either in the environment or
in a .env file in the working directory.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Optional YAML configuration file")
}
