package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/readme-bot/internal/usecase"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Generates a README for one repository you pick, committing only after confirmation",
	Long: `Lists the repositories of the authenticated account and asks for one by number.
The generated README is previewed; answering "y" commits it, anything else saves it
as README_<repository>.md in the output directory instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		container, err := newContainer(ctx, cmd, os.Stdin, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build application: %v\n", err)
			os.Exit(1)
		}

		var result *usecase.InteractiveResult
		err = container.Invoke(func(interactive *usecase.Interactive) error {
			var runErr error
			result, runErr = interactive.Run(ctx)
			return runErr
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		switch {
		case result.SavedTo != "":
			fmt.Printf("README saved locally as: %s\n", result.SavedTo)
		case result.Action != "":
			fmt.Printf("%s: %s\n", result.Repository, result.Action)
		}
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
