package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"profile-summary/internal/pagination"
	"profile-summary/internal/summary"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"
)

const DefaultPerPage = 100

type Client struct {
	client  *github.Client
	perPage int
}

// NewClient builds a client for api.github.com. An empty token makes
// unauthenticated requests. timeout bounds every single request.
func NewClient(ctx context.Context, token string, timeout time.Duration, perPage int) *Client {
	return &Client{
		client:  github.NewClient(NewHTTPClient(ctx, token, timeout)),
		perPage: normalizePerPage(perPage),
	}
}

// NewHTTPClient returns an HTTP client that authenticates with token when
// one is given.
func NewHTTPClient(ctx context.Context, token string, timeout time.Duration) *http.Client {
	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}
	httpClient.Timeout = timeout
	return httpClient
}

// NewClientWithBaseURL points the client at another API root, such as a
// GitHub Enterprise server or a test server.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string, perPage int) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid API url %q: %w", baseURL, err)
	}

	gh := github.NewClient(httpClient)
	gh.BaseURL = u

	return &Client{
		client:  gh,
		perPage: normalizePerPage(perPage),
	}, nil
}

func normalizePerPage(perPage int) int {
	if perPage < 1 || perPage > DefaultPerPage {
		return DefaultPerPage
	}
	return perPage
}

func (c *Client) PerPage() int {
	return c.perPage
}

func (c *Client) GetUser(ctx context.Context, login string) (summary.User, error) {
	user, resp, err := c.client.Users.Get(ctx, login)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return summary.User{}, fmt.Errorf("user '%s' not found", login)
		}
		return summary.User{}, classify("get user", err)
	}

	return summary.User{
		Name:      user.GetName(),
		AvatarURL: user.GetAvatarURL(),
		Login:     user.GetLogin(),
		URL:       user.GetHTMLURL(),
	}, nil
}

// GetRepositories lists the names of every repository owned by login.
func (c *Client) GetRepositories(ctx context.Context, login string, skipForks bool) ([]string, error) {
	var names []string
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "full_name",
		ListOptions: github.ListOptions{PerPage: c.perPage},
	}

	for {
		repos, resp, err := c.client.Repositories.ListByUser(ctx, login, opts)
		if err != nil {
			return nil, classify("list repositories", err)
		}

		for _, repo := range repos {
			if skipForks && repo.GetFork() {
				continue
			}
			names = append(names, repo.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

// Languages returns the byte count per language, largest first.
func (c *Client) Languages(ctx context.Context, owner, repo string) ([]summary.LanguageBytes, error) {
	langs, _, err := c.client.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, classify("list languages", err)
	}

	result := make([]summary.LanguageBytes, 0, len(langs))
	for key, bytes := range langs {
		result = append(result, summary.LanguageBytes{Key: key, Bytes: int64(bytes)})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Bytes != result[j].Bytes {
			return result[i].Bytes > result[j].Bytes
		}
		return result[i].Key < result[j].Key
	})
	return result, nil
}

// WeeklyOwnerCommits returns the owner's weekly commit counts, oldest first.
// While GitHub is still computing the statistics (202 Accepted) the series
// is empty.
func (c *Client) WeeklyOwnerCommits(ctx context.Context, owner, repo string) ([]int, error) {
	participation, _, err := c.client.Repositories.ListParticipation(ctx, owner, repo)
	if err != nil {
		var accepted *github.AcceptedError
		if errors.As(err, &accepted) {
			return nil, nil
		}
		return nil, classify("get participation", err)
	}
	return participation.Owner, nil
}

// CountCommits counts the commits on the default branch. An empty
// repository, answered with 409 Conflict, has zero commits.
func (c *Client) CountCommits(ctx context.Context, owner, repo string) (int, error) {
	count, err := pagination.ResolveCount(ctx, c.perPage, func(ctx context.Context, page int) (pagination.Page, error) {
		commits, resp, err := c.client.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
			ListOptions: github.ListOptions{Page: page, PerPage: c.perPage},
		})
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusConflict {
				return pagination.Page{}, nil
			}
			return pagination.Page{}, err
		}
		return pagination.Page{Items: len(commits), Link: resp.Header.Get("Link")}, nil
	})
	if err != nil {
		return 0, classify("count commits", err)
	}
	return count, nil
}

// CountClosedIssues counts issues closed since the given instant. The issues
// endpoint includes pull requests.
func (c *Client) CountClosedIssues(ctx context.Context, owner, repo string, since time.Time) (int, error) {
	count, err := pagination.ResolveCount(ctx, c.perPage, func(ctx context.Context, page int) (pagination.Page, error) {
		issues, resp, err := c.client.Issues.ListByRepo(ctx, owner, repo, &github.IssueListByRepoOptions{
			State:       "closed",
			Since:       since,
			ListOptions: github.ListOptions{Page: page, PerPage: c.perPage},
		})
		if err != nil {
			return pagination.Page{}, err
		}
		return pagination.Page{Items: len(issues), Link: resp.Header.Get("Link")}, nil
	})
	if err != nil {
		return 0, classify("count closed issues", err)
	}
	return count, nil
}
