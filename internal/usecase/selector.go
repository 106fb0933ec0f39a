// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/readme-bot/internal/domain"
	"github.com/naka-gawa/readme-bot/internal/gateway"
)

// Selector picks the source files of a repository worth sending to the model.
type Selector struct {
	source gateway.SourceControl
	rules  domain.SelectionRules
	logger logrus.FieldLogger
}

// NewSelector creates a new Selector instance.
func NewSelector(source gateway.SourceControl, rules domain.SelectionRules, logger logrus.FieldLogger) *Selector {
	return &Selector{
		source: source,
		rules:  rules,
		logger: logger,
	}
}

// Select walks the default branch tree and returns the decoded content of every
// file that passes the selection rules, in tree order.
// Any fetch failure is logged and results in an empty selection.
func (s *Selector) Select(ctx context.Context, repo domain.Repository) domain.SourceFiles {
	log := s.logger.WithField("repository", repo.FullName)
	log.Infof("Reading files from '%s'...", repo.Name)

	entries, err := s.source.FetchTree(ctx, repo)
	if err != nil {
		log.Errorf("GitHub error fetching contents: %v", err)
		return nil
	}

	var files domain.SourceFiles
	for _, entry := range entries {
		if !entry.IsBlob() || s.rules.Excluded(entry.Path) {
			continue
		}
		if s.rules.TooLarge(entry.Size) {
			log.Warnf("Skipping large file: %s", entry.Path)
			continue
		}
		data, err := s.source.FetchBlob(ctx, repo, entry.SHA)
		if err != nil {
			log.Errorf("GitHub error fetching %s: %v", entry.Path, err)
			return nil
		}
		files = append(files, domain.SourceFile{
			Path:    entry.Path,
			Size:    entry.Size,
			Content: strings.ToValidUTF8(string(data), "\uFFFD"),
		})
	}

	log.Infof("Found %d relevant code files to analyze.", len(files))
	log.Debugf("Selected: %s", strings.Join(files.Paths(), ", "))
	return files
}
