package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/readme-bot/internal/server"
	"github.com/naka-gawa/readme-bot/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves POST /trigger, which starts a documentation pass in the background",
	Long: `Starts an HTTP server. Each POST /trigger starts a documentation pass and is
answered with 202 immediately; while a pass is running further triggers get 409.
On SIGINT/SIGTERM the server stops accepting requests and waits for the running pass.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		container, err := newContainer(ctx, cmd, os.Stdin, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build application: %v\n", err)
			os.Exit(1)
		}

		err = container.Invoke(func(srv *server.Server, dispatcher *usecase.Dispatcher, logger logrus.FieldLogger) error {
			if err := srv.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()

			logger.Info("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warnf("Server shutdown: %v", err)
			}
			dispatcher.Wait()
			return nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
