package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/readme-bot/internal/domain"
	"github.com/naka-gawa/readme-bot/internal/usecase"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs one documentation pass over all repositories and outputs a JSON report",
	Long: `Walks every repository of the authenticated account, most recently updated first.
A README.md is generated and committed when the repository has none, or when it has
one but received commits since midnight. Archived and empty repositories are skipped.
The per-repository outcome is printed as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		container, err := newContainer(ctx, cmd, os.Stdin, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build application: %v\n", err)
			os.Exit(1)
		}

		var report *domain.Report
		err = container.Invoke(func(documenter *usecase.Documenter) error {
			var runErr error
			report, runErr = documenter.Run(ctx)
			return runErr
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Documentation pass failed: %v\n", err)
			os.Exit(1)
		}

		// Marshal the report into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal report to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
