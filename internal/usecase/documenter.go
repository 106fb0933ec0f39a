package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/readme-bot/internal/domain"
	"github.com/naka-gawa/readme-bot/internal/gateway"
)

const banner = "======================================================"

// Documenter is the use case for one automated documentation pass.
// It walks every repository of the account in order and never runs two
// repositories at once.
type Documenter struct {
	source    gateway.SourceControl
	selector  *Selector
	generator *Generator
	committer *CommitWriter
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewDocumenter creates a new Documenter instance.
func NewDocumenter(source gateway.SourceControl, selector *Selector, generator *Generator, committer *CommitWriter, logger logrus.FieldLogger) *Documenter {
	return &Documenter{
		source:    source,
		selector:  selector,
		generator: generator,
		committer: committer,
		logger:    logger,
		now:       time.Now,
	}
}

// Run performs a full pass. It only returns an error when the account or its
// repositories cannot be read; per-repository failures end up in the report.
func (d *Documenter) Run(ctx context.Context) (*domain.Report, error) {
	d.logger.Info(banner)
	d.logger.Info("Starting Automated AI-Powered README Documentation")
	d.logger.Info(banner)

	d.logger.Info("Authenticating and fetching all your repositories...")
	login, err := d.source.AuthenticatedLogin(ctx)
	if err != nil {
		return nil, err
	}
	d.logger.Infof("Authenticated as '%s'.", login)

	repos, err := d.source.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}
	d.logger.Infof("Found %d repositories.", len(repos))

	report := &domain.Report{Login: login, Outcomes: make([]domain.Outcome, 0, len(repos))}
	for _, repo := range repos {
		report.Outcomes = append(report.Outcomes, d.process(ctx, repo))
	}

	Summarize(report, d.logger)
	d.logger.Info(banner)
	d.logger.Info("Automated README process completed for all repositories.")
	d.logger.Info(banner)
	return report, nil
}

func (d *Documenter) process(ctx context.Context, repo domain.Repository) domain.Outcome {
	log := d.logger.WithField("repository", repo.FullName)
	log.Infof("Processing Repository: %s", repo.FullName)
	outcome := domain.Outcome{Repository: repo.FullName}

	if repo.Archived {
		log.Info("Skipping archived repository.")
		outcome.Action = domain.ActionSkippedArchived
		return outcome
	}
	if repo.Size == 0 {
		log.Info("Skipping empty repository.")
		outcome.Action = domain.ActionSkippedEmpty
		return outcome
	}

	readmeSHA, err := d.readmeSHA(ctx, repo)
	if err != nil {
		log.Errorf("Could not look up %s: %v", domain.ReadmePath, err)
		outcome.Action = domain.ActionFailed
		return outcome
	}

	committedToday := false
	if readmeSHA != "" {
		log.Infof("%s found. Checking for recent code changes...", domain.ReadmePath)
		committedToday = d.committedToday(ctx, repo)
	}

	decision := domain.Decide(repo, readmeSHA, committedToday)
	log.Info(decision.Reason)
	if !decision.Generate {
		outcome.Action = domain.ActionUpToDate
		return outcome
	}

	log.Info("Proceeding with README generation...")
	files := d.selector.Select(ctx, repo)
	if len(files) == 0 {
		log.Warn("No code files found to analyze. Skipping README generation.")
		outcome.Action = domain.ActionNoFiles
		return outcome
	}
	outcome.Files = len(files)
	outcome.PromptBytes = len(BuildPrompt(repo.Name, files))

	content := d.generator.Generate(ctx, repo.Name, files)
	outcome.Action = d.committer.Commit(ctx, repo, domain.Readme{Content: content, PriorSHA: readmeSHA})
	return outcome
}

// readmeSHA returns the README revision, or "" when the repository has none.
func (d *Documenter) readmeSHA(ctx context.Context, repo domain.Repository) (string, error) {
	sha, err := d.source.FetchFileSHA(ctx, repo, domain.ReadmePath)
	if errors.Is(err, gateway.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up README: %w", err)
	}
	return sha, nil
}

// committedToday treats a failed history query as no activity.
func (d *Documenter) committedToday(ctx context.Context, repo domain.Repository) bool {
	recent, err := d.source.HasCommitsSince(ctx, repo, domain.StartOfDay(d.now()))
	if err != nil {
		d.logger.WithField("repository", repo.FullName).Errorf("Could not check commits for %s: %v", repo.Name, err)
		return false
	}
	return recent
}
