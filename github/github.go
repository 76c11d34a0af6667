package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v51/github"
	"golang.org/x/oauth2"
)

type Client struct {
	client *github.Client
}

func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	return NewClientWithHTTP(oauth2.NewClient(ctx, ts))
}

// NewClientWithHTTP wraps an already authenticated HTTP client.
func NewClientWithHTTP(httpClient *http.Client) *Client {
	return &Client{github.NewClient(httpClient)}
}

func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	return pr, err
}

func (c *Client) UpdatePullRequest(ctx context.Context, owner, repo string, number int, pr *github.PullRequest) (*github.PullRequest, error) {
	updatedPR, _, err := c.client.PullRequests.Edit(ctx, owner, repo, number, pr)
	return updatedPR, err
}

// CreateIssueComment posts a conversation comment on a pull request or issue.
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (*github.IssueComment, error) {
	comment, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{Body: &body})
	return comment, err
}
