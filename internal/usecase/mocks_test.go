package usecase

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/naka-gawa/readme-bot/internal/domain"
)

// mockSourceControl is a mock implementation of the gateway.SourceControl interface.
type mockSourceControl struct {
	mock.Mock
}

func (m *mockSourceControl) AuthenticatedLogin(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockSourceControl) ListRepositories(ctx context.Context) ([]domain.Repository, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockSourceControl) FetchTree(ctx context.Context, repo domain.Repository) ([]domain.TreeEntry, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TreeEntry), args.Error(1)
}

func (m *mockSourceControl) FetchBlob(ctx context.Context, repo domain.Repository, sha string) ([]byte, error) {
	args := m.Called(ctx, repo, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockSourceControl) FetchFileSHA(ctx context.Context, repo domain.Repository, path string) (string, error) {
	args := m.Called(ctx, repo, path)
	return args.String(0), args.Error(1)
}

func (m *mockSourceControl) HasCommitsSince(ctx context.Context, repo domain.Repository, since time.Time) (bool, error) {
	args := m.Called(ctx, repo, since)
	return args.Bool(0), args.Error(1)
}

func (m *mockSourceControl) CreateFile(ctx context.Context, repo domain.Repository, path, message string, content []byte) error {
	args := m.Called(ctx, repo, path, message, content)
	return args.Error(0)
}

func (m *mockSourceControl) UpdateFile(ctx context.Context, repo domain.Repository, path, message string, content []byte, sha string) error {
	args := m.Called(ctx, repo, path, message, content, sha)
	return args.Error(0)
}

// mockTextGenerator is a mock implementation of the gateway.TextGenerator interface.
type mockTextGenerator struct {
	mock.Mock
}

func (m *mockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// mockPrompter answers questions in order and records what was shown.
type mockPrompter struct {
	answers  []string
	shown    []string
	previews []string
}

func (p *mockPrompter) ShowRepositories(names []string) {
	p.shown = append(p.shown, names...)
}

func (p *mockPrompter) ShowPreview(_ string, preview string) {
	p.previews = append(p.previews, preview)
}

func (p *mockPrompter) Ask(string) (string, error) {
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
