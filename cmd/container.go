package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/dig"

	"github.com/naka-gawa/readme-bot/internal/config"
	"github.com/naka-gawa/readme-bot/internal/console"
	"github.com/naka-gawa/readme-bot/internal/domain"
	"github.com/naka-gawa/readme-bot/internal/gateway"
	"github.com/naka-gawa/readme-bot/internal/server"
	"github.com/naka-gawa/readme-bot/internal/usecase"
)

// newLogger writes to standard error; verbose enables debug output.
func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		logrus.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// newContainer registers every service of the application. Constructors run
// lazily, so a command only builds what it invokes.
func newContainer(ctx context.Context, cmd *cobra.Command, in io.Reader, out io.Writer) (*dig.Container, error) {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	configPath, _ := cmd.InheritedFlags().GetString("config")

	container := dig.New()
	providers := []interface{}{
		func() context.Context { return ctx },
		func() logrus.FieldLogger { return newLogger(verbose) },
		func() (*config.Config, error) { return config.Load(configPath) },
		func(cfg *config.Config) domain.SelectionRules { return cfg.Selection },
		func(cfg *config.Config, logger logrus.FieldLogger) (gateway.SourceControl, error) {
			return gateway.NewGitHubGateway(cfg.GitHubToken, cfg.Affiliation, logger)
		},
		func(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (gateway.TextGenerator, error) {
			return gateway.NewGeminiGateway(ctx, cfg.GeminiAPIKey, cfg.Model, logger)
		},
		usecase.NewSelector,
		usecase.NewGenerator,
		usecase.NewCommitWriter,
		usecase.NewDocumenter,
		func(d *usecase.Documenter) usecase.Runner { return d },
		usecase.NewDispatcher,
		func() usecase.Prompter { return console.NewPrompter(in, out) },
		func(
			source gateway.SourceControl,
			selector *usecase.Selector,
			generator *usecase.Generator,
			committer *usecase.CommitWriter,
			prompter usecase.Prompter,
			cfg *config.Config,
			logger logrus.FieldLogger,
		) *usecase.Interactive {
			return usecase.NewInteractive(source, selector, generator, committer, prompter, cfg.OutputDir, logger)
		},
		func(cfg *config.Config, dispatcher *usecase.Dispatcher, logger logrus.FieldLogger) *server.Server {
			return server.New(cfg.Listen, dispatcher, logger)
		},
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, fmt.Errorf("failed to register provider: %w", err)
		}
	}
	return container, nil
}
