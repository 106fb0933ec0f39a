// Package gateway provides gateways to the GitHub and Gemini APIs,
// abstracting away the underlying REST, GraphQL and generative clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/readme-bot/internal/domain"
)

var (
	// ErrNotFound is returned when the requested file does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStaleRevision is returned when a file write carried a revision that
	// no longer matches the stored file.
	ErrStaleRevision = errors.New("stale revision")
)

const perPage = 100

// SourceControl defines the behavior of a gateway for reading and writing GitHub repositories.
type SourceControl interface {
	AuthenticatedLogin(ctx context.Context) (string, error)
	ListRepositories(ctx context.Context) ([]domain.Repository, error)
	FetchTree(ctx context.Context, repo domain.Repository) ([]domain.TreeEntry, error)
	FetchBlob(ctx context.Context, repo domain.Repository, sha string) ([]byte, error)
	// FetchFileSHA returns the blob SHA of path, or ErrNotFound.
	FetchFileSHA(ctx context.Context, repo domain.Repository, path string) (string, error)
	HasCommitsSince(ctx context.Context, repo domain.Repository, since time.Time) (bool, error)
	CreateFile(ctx context.Context, repo domain.Repository, path, message string, content []byte) error
	// UpdateFile overwrites path only if its current revision is sha.
	UpdateFile(ctx context.Context, repo domain.Repository, path, message string, content []byte, sha string) error
}

// GitHubGateway is the concrete implementation of the SourceControl interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	affiliation   string
	logger        logrus.FieldLogger
}

// commitHistoryQuery counts commits on the default branch since a timestamp.
type commitHistoryQuery struct {
	Repository struct {
		DefaultBranchRef struct {
			Target struct {
				Commit struct {
					History struct {
						TotalCount int
					} `graphql:"history(since: $since)"`
				} `graphql:"... on Commit"`
			}
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// affiliation restricts which repositories are listed ("owner" when empty).
func NewGitHubGateway(token, affiliation string, logger logrus.FieldLogger) (SourceControl, error) {
	if token == "" {
		return nil, errors.New("github token is empty")
	}
	if affiliation == "" {
		affiliation = "owner"
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   http.DefaultTransport,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		affiliation:   affiliation,
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) AuthenticatedLogin(ctx context.Context) (string, error) {
	user, _, err := g.restClient.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to authenticate with GitHub: %w", err)
	}
	return user.GetLogin(), nil
}

// ListRepositories lists the authenticated account's repositories, most recently updated first.
func (g *GitHubGateway) ListRepositories(ctx context.Context) ([]domain.Repository, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Affiliation: g.affiliation,
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	var repos []domain.Repository
	for {
		page, resp, err := g.restClient.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}
		for _, r := range page {
			repos = append(repos, domain.Repository{
				Owner:         r.GetOwner().GetLogin(),
				Name:          r.GetName(),
				FullName:      r.GetFullName(),
				DefaultBranch: r.GetDefaultBranch(),
				Size:          r.GetSize(),
				Archived:      r.GetArchived(),
				PushedAt:      r.GetPushedAt().Time,
				UpdatedAt:     r.GetUpdatedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug("  Fetching next page of repositories...")
	}
	return repos, nil
}

// FetchTree returns the recursive tree of the default branch head.
func (g *GitHubGateway) FetchTree(ctx context.Context, repo domain.Repository) ([]domain.TreeEntry, error) {
	tree, _, err := g.restClient.Git.GetTree(ctx, repo.Owner, repo.Name, repo.DefaultBranch, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get tree of %s: %w", repo.FullName, err)
	}
	if tree.GetTruncated() {
		g.logger.WithField("repository", repo.FullName).Warn("Tree listing was truncated by GitHub; some files are missing")
	}
	entries := make([]domain.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, domain.TreeEntry{
			Path: e.GetPath(),
			Type: e.GetType(),
			Size: e.GetSize(),
			SHA:  e.GetSHA(),
		})
	}
	return entries, nil
}

func (g *GitHubGateway) FetchBlob(ctx context.Context, repo domain.Repository, sha string) ([]byte, error) {
	data, _, err := g.restClient.Git.GetBlobRaw(ctx, repo.Owner, repo.Name, sha)
	if err != nil {
		return nil, fmt.Errorf("failed to get blob %s: %w", sha, err)
	}
	return data, nil
}

func (g *GitHubGateway) FetchFileSHA(ctx context.Context, repo domain.Repository, path string) (string, error) {
	file, _, resp, err := g.restClient.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, &github.RepositoryContentGetOptions{
		Ref: repo.DefaultBranch,
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", path, err)
	}
	if file == nil {
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}
	return file.GetSHA(), nil
}

// HasCommitsSince reports whether the default branch received a commit at or after since.
func (g *GitHubGateway) HasCommitsSince(ctx context.Context, repo domain.Repository, since time.Time) (bool, error) {
	variables := map[string]interface{}{
		"owner": githubv4.String(repo.Owner),
		"name":  githubv4.String(repo.Name),
		"since": githubv4.GitTimestamp{Time: since},
	}
	var q commitHistoryQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return false, fmt.Errorf("failed to execute GraphQL query for commit history: %w", err)
	}
	return q.Repository.DefaultBranchRef.Target.Commit.History.TotalCount > 0, nil
}

func (g *GitHubGateway) CreateFile(ctx context.Context, repo domain.Repository, path, message string, content []byte) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(repo.DefaultBranch),
	}
	_, resp, err := g.restClient.Repositories.CreateFile(ctx, repo.Owner, repo.Name, path, opts)
	if err != nil {
		return writeError(resp, path, err)
	}
	return nil
}

func (g *GitHubGateway) UpdateFile(ctx context.Context, repo domain.Repository, path, message string, content []byte, sha string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		SHA:     github.String(sha),
		Branch:  github.String(repo.DefaultBranch),
	}
	_, resp, err := g.restClient.Repositories.UpdateFile(ctx, repo.Owner, repo.Name, path, opts)
	if err != nil {
		return writeError(resp, path, err)
	}
	return nil
}

// writeError maps a 409 Conflict to ErrStaleRevision.
func writeError(resp *github.Response, path string, err error) error {
	if resp != nil && resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("failed to write %s: %w: %v", path, ErrStaleRevision, err)
	}
	return fmt.Errorf("failed to write %s: %w", path, err)
}
