package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/readme-bot/internal/domain"
	"github.com/naka-gawa/readme-bot/internal/gateway"
)

// ErrInvalidSelection is returned when the chosen ordinal does not name a repository.
var ErrInvalidSelection = errors.New("invalid selection")

const previewLength = 500

// Prompter is the console boundary of the interactive variant.
type Prompter interface {
	ShowRepositories(names []string)
	ShowPreview(repoName, preview string)
	Ask(question string) (string, error)
}

// InteractiveResult tells what happened to the single selected repository.
type InteractiveResult struct {
	Repository string
	Action     domain.Action
	// SavedTo is the local file written when the commit was declined.
	SavedTo string
}

// Interactive documents one repository chosen by the user and commits only after confirmation.
type Interactive struct {
	source    gateway.SourceControl
	selector  *Selector
	generator *Generator
	committer *CommitWriter
	prompter  Prompter
	outputDir string
	logger    logrus.FieldLogger
}

// NewInteractive creates a new Interactive instance. Declined READMEs are
// written to outputDir, the working directory when empty.
func NewInteractive(source gateway.SourceControl, selector *Selector, generator *Generator, committer *CommitWriter, prompter Prompter, outputDir string, logger logrus.FieldLogger) *Interactive {
	if outputDir == "" {
		outputDir = "."
	}
	return &Interactive{
		source:    source,
		selector:  selector,
		generator: generator,
		committer: committer,
		prompter:  prompter,
		outputDir: outputDir,
		logger:    logger,
	}
}

// Run lists the repositories, asks for one, generates its README, previews it
// and either commits it or saves it locally.
func (i *Interactive) Run(ctx context.Context) (*InteractiveResult, error) {
	if _, err := i.source.AuthenticatedLogin(ctx); err != nil {
		return nil, err
	}
	repos, err := i.source.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, errors.New("no repositories found")
	}

	names := make([]string, 0, len(repos))
	for _, r := range repos {
		names = append(names, r.Name)
	}
	i.prompter.ShowRepositories(names)

	answer, err := i.prompter.Ask("Select a repository by number: ")
	if err != nil {
		return nil, err
	}
	index, err := parseOrdinal(answer, len(repos))
	if err != nil {
		return nil, err
	}
	repo := repos[index]
	i.logger.Infof("Starting process for repository: %s", repo.Name)
	result := &InteractiveResult{Repository: repo.FullName}

	files := i.selector.Select(ctx, repo)
	if len(files) == 0 {
		i.logger.Warn("Could not retrieve file contents. Aborting.")
		result.Action = domain.ActionNoFiles
		return result, nil
	}
	content := i.generator.Generate(ctx, repo.Name, files)
	i.prompter.ShowPreview(repo.Name, Preview(content))

	answer, err = i.prompter.Ask(fmt.Sprintf("Do you want to commit this README.md to the '%s' repository? (y/n): ", repo.Name))
	if err != nil {
		return nil, err
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		path, err := i.saveLocally(repo, content)
		if err != nil {
			return nil, err
		}
		i.logger.Info("Operation cancelled by user.")
		i.logger.Infof("README saved locally as: %s", path)
		result.SavedTo = path
		return result, nil
	}

	sha, err := i.source.FetchFileSHA(ctx, repo, domain.ReadmePath)
	if err != nil && !errors.Is(err, gateway.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up README: %w", err)
	}
	result.Action = i.committer.Commit(ctx, repo, domain.Readme{Content: content, PriorSHA: sha})
	return result, nil
}

func (i *Interactive) saveLocally(repo domain.Repository, content string) (string, error) {
	path := filepath.Join(i.outputDir, fmt.Sprintf("README_%s.md", repo.Name))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to save README locally: %w", err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}

// parseOrdinal turns a 1-based answer into an index below n.
func parseOrdinal(answer string, n int) (int, error) {
	ordinal, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, strings.TrimSpace(answer))
	}
	if ordinal < 1 || ordinal > n {
		return 0, fmt.Errorf("%w: %d is out of range 1-%d", ErrInvalidSelection, ordinal, n)
	}
	return ordinal - 1, nil
}

// Preview returns the first 500 characters of content, with "..." appended when cut.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "..."
}
