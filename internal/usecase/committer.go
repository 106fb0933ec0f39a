package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/readme-bot/internal/domain"
	"github.com/naka-gawa/readme-bot/internal/gateway"
)

const (
	createMessage = "docs: Create README.md with AI assistance"
	updateMessage = "docs: Update README.md with AI assistance"
)

// CommitWriter creates or updates README.md on the default branch.
type CommitWriter struct {
	source gateway.SourceControl
	logger logrus.FieldLogger
}

// NewCommitWriter creates a new CommitWriter instance.
func NewCommitWriter(source gateway.SourceControl, logger logrus.FieldLogger) *CommitWriter {
	return &CommitWriter{
		source: source,
		logger: logger,
	}
}

// Commit writes readme to repo. An update is issued when readme carries the prior
// revision, a create otherwise. Failures are logged and reported as ActionFailed.
func (c *CommitWriter) Commit(ctx context.Context, repo domain.Repository, readme domain.Readme) domain.Action {
	log := c.logger.WithField("repository", repo.FullName)
	log.Infof("Committing %s to '%s'...", domain.ReadmePath, repo.Name)

	content := []byte(readme.Content)
	if readme.PriorSHA != "" {
		err := c.source.UpdateFile(ctx, repo, domain.ReadmePath, updateMessage, content, readme.PriorSHA)
		if err != nil {
			if errors.Is(err, gateway.ErrStaleRevision) {
				log.Warnf("%s changed since it was read, leaving it untouched: %v", domain.ReadmePath, err)
			} else {
				log.Errorf("GitHub error during commit: %v", err)
			}
			return domain.ActionFailed
		}
		log.Infof("%s updated in '%s'.", domain.ReadmePath, repo.Name)
		return domain.ActionUpdated
	}

	if err := c.source.CreateFile(ctx, repo, domain.ReadmePath, createMessage, content); err != nil {
		log.Errorf("GitHub error during commit: %v", err)
		return domain.ActionFailed
	}
	log.Infof("New %s created in '%s'.", domain.ReadmePath, repo.Name)
	return domain.ActionCreated
}
