package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/readme-bot/internal/domain"
	"github.com/naka-gawa/readme-bot/internal/gateway"
)

var fixedNow = time.Date(2026, 10, 15, 14, 30, 0, 0, time.Local)

func newTestDocumenter(source *mockSourceControl, model *mockTextGenerator) *Documenter {
	logger := discardLogger()
	d := NewDocumenter(
		source,
		NewSelector(source, domain.DefaultSelectionRules(), logger),
		NewGenerator(model, logger),
		NewCommitWriter(source, logger),
		logger,
	)
	d.now = func() time.Time { return fixedNow }
	return d
}

// TestDocumenter_Run_DemoScenario covers one repository without a README holding
// one allowed file and one image.
func TestDocumenter_Run_DemoScenario(t *testing.T) {
	ctx := context.Background()
	source := new(mockSourceControl)
	model := new(mockTextGenerator)
	appPy := []byte("from flask import Flask\napp = Flask(__name__)\n#...")
	require.Len(t, appPy, 50)
	files := domain.SourceFiles{{Path: "app.py", Size: 50, Content: string(appPy)}}

	source.On("AuthenticatedLogin", mock.Anything).Return("me", nil)
	source.On("ListRepositories", mock.Anything).Return([]domain.Repository{demo}, nil)
	source.On("FetchFileSHA", mock.Anything, demo, "README.md").Return("", gateway.ErrNotFound)
	source.On("FetchTree", mock.Anything, demo).Return([]domain.TreeEntry{
		{Path: "app.py", Type: "blob", Size: 50, SHA: "s-app"},
		{Path: "logo.png", Type: "blob", Size: 4096, SHA: "s-logo"},
	}, nil)
	source.On("FetchBlob", mock.Anything, demo, "s-app").Return(appPy, nil)
	model.On("Generate", mock.Anything, BuildPrompt("demo", files)).Return("# demo\n\nA Flask app.", nil)
	source.On("CreateFile", mock.Anything, demo, "README.md", createMessage, []byte("# demo\n\nA Flask app.")).Return(nil).Once()

	report, err := newTestDocumenter(source, model).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, "me", report.Login)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, domain.ActionCreated, report.Outcomes[0].Action)
	assert.Equal(t, 1, report.Outcomes[0].Files)
	source.AssertExpectations(t)
	model.AssertExpectations(t)
	source.AssertNotCalled(t, "FetchBlob", mock.Anything, demo, "s-logo")
	source.AssertNotCalled(t, "HasCommitsSince", mock.Anything, mock.Anything, mock.Anything)
	source.AssertNotCalled(t, "UpdateFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	source.AssertNumberOfCalls(t, "CreateFile", 1)
}

func TestDocumenter_Run_Decisions(t *testing.T) {
	archived := domain.Repository{Owner: "me", Name: "old", FullName: "me/old", DefaultBranch: "main", Size: 9, Archived: true}
	empty := domain.Repository{Owner: "me", Name: "blank", FullName: "me/blank", DefaultBranch: "main"}
	midnight := domain.StartOfDay(fixedNow)
	oneFile := []domain.TreeEntry{{Path: "main.go", Type: "blob", Size: 12, SHA: "s-main"}}

	testCases := []struct {
		name     string
		repos    []domain.Repository
		setup    func(s *mockSourceControl, m *mockTextGenerator)
		expected []domain.Action
	}{
		{
			name:     "archived and empty repositories are skipped before any lookup",
			repos:    []domain.Repository{archived, empty},
			setup:    func(s *mockSourceControl, m *mockTextGenerator) {},
			expected: []domain.Action{domain.ActionSkippedArchived, domain.ActionSkippedEmpty},
		},
		{
			name:  "README present and no commits today - up to date",
			repos: []domain.Repository{demo},
			setup: func(s *mockSourceControl, m *mockTextGenerator) {
				s.On("FetchFileSHA", mock.Anything, demo, "README.md").Return("abc", nil)
				s.On("HasCommitsSince", mock.Anything, demo, midnight).Return(false, nil)
			},
			expected: []domain.Action{domain.ActionUpToDate},
		},
		{
			name:  "README present and commits today - update with prior revision",
			repos: []domain.Repository{demo},
			setup: func(s *mockSourceControl, m *mockTextGenerator) {
				s.On("FetchFileSHA", mock.Anything, demo, "README.md").Return("abc", nil)
				s.On("HasCommitsSince", mock.Anything, demo, midnight).Return(true, nil)
				s.On("FetchTree", mock.Anything, demo).Return(oneFile, nil)
				s.On("FetchBlob", mock.Anything, demo, "s-main").Return([]byte("package main"), nil)
				m.On("Generate", mock.Anything, mock.Anything).Return("# demo", nil)
				s.On("UpdateFile", mock.Anything, demo, "README.md", updateMessage, []byte("# demo"), "abc").Return(nil)
			},
			expected: []domain.Action{domain.ActionUpdated},
		},
		{
			name:  "commit history failure counts as no recent commits",
			repos: []domain.Repository{demo},
			setup: func(s *mockSourceControl, m *mockTextGenerator) {
				s.On("FetchFileSHA", mock.Anything, demo, "README.md").Return("abc", nil)
				s.On("HasCommitsSince", mock.Anything, demo, midnight).Return(false, errors.New("graphql down"))
			},
			expected: []domain.Action{domain.ActionUpToDate},
		},
		{
			name:  "README lookup failure skips only that repository",
			repos: []domain.Repository{demo, archived},
			setup: func(s *mockSourceControl, m *mockTextGenerator) {
				s.On("FetchFileSHA", mock.Anything, demo, "README.md").Return("", errors.New("502 bad gateway"))
			},
			expected: []domain.Action{domain.ActionFailed, domain.ActionSkippedArchived},
		},
		{
			name:  "nothing selectable - no generation, no commit",
			repos: []domain.Repository{demo},
			setup: func(s *mockSourceControl, m *mockTextGenerator) {
				s.On("FetchFileSHA", mock.Anything, demo, "README.md").Return("", gateway.ErrNotFound)
				s.On("FetchTree", mock.Anything, demo).Return([]domain.TreeEntry{{Path: "README.txt", Type: "blob", Size: 3, SHA: "s-txt"}}, nil)
			},
			expected: []domain.Action{domain.ActionNoFiles},
		},
		{
			name:  "model failure still commits the fallback document",
			repos: []domain.Repository{demo},
			setup: func(s *mockSourceControl, m *mockTextGenerator) {
				s.On("FetchFileSHA", mock.Anything, demo, "README.md").Return("", gateway.ErrNotFound)
				s.On("FetchTree", mock.Anything, demo).Return(oneFile, nil)
				s.On("FetchBlob", mock.Anything, demo, "s-main").Return([]byte("package main"), nil)
				m.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("content policy"))
				s.On("CreateFile", mock.Anything, demo, "README.md", createMessage, []byte(FallbackReadme("demo"))).Return(nil)
			},
			expected: []domain.Action{domain.ActionCreated},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			source := new(mockSourceControl)
			model := new(mockTextGenerator)
			source.On("AuthenticatedLogin", mock.Anything).Return("me", nil)
			source.On("ListRepositories", mock.Anything).Return(tc.repos, nil)
			tc.setup(source, model)

			report, err := newTestDocumenter(source, model).Run(context.Background())

			require.NoError(t, err)
			actions := make([]domain.Action, 0, len(report.Outcomes))
			for _, o := range report.Outcomes {
				actions = append(actions, o.Action)
			}
			assert.Equal(t, tc.expected, actions)
			source.AssertExpectations(t)
			model.AssertExpectations(t)
		})
	}
}

func TestDocumenter_Run_EnumerationErrors(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(s *mockSourceControl)
	}{
		{
			name: "authentication fails",
			setup: func(s *mockSourceControl) {
				s.On("AuthenticatedLogin", mock.Anything).Return("", errors.New("401 Bad credentials"))
			},
		},
		{
			name: "listing fails",
			setup: func(s *mockSourceControl) {
				s.On("AuthenticatedLogin", mock.Anything).Return("me", nil)
				s.On("ListRepositories", mock.Anything).Return(nil, errors.New("500"))
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			source := new(mockSourceControl)
			tc.setup(source)

			report, err := newTestDocumenter(source, new(mockTextGenerator)).Run(context.Background())

			assert.Error(t, err)
			assert.Nil(t, report)
			source.AssertExpectations(t)
		})
	}
}
