package tracker

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/felixgeelhaar/planforge/internal/errors"
)

// listPageSize keeps pagination round-trips low; milestone and filtered
// issue counts are small (tens, not thousands).
const listPageSize = 100

// GitHubClient implements Client against the GitHub REST API
type GitHubClient struct {
	client *github.Client
}

// GitHubOption customizes a GitHubClient
type GitHubOption func(*GitHubClient) error

// WithAPIBaseURL points the client at a different API endpoint (used by tests)
func WithAPIBaseURL(base string) GitHubOption {
	return func(c *GitHubClient) error {
		u, err := url.Parse(base + "/")
		if err != nil {
			return err
		}
		c.client.BaseURL = u
		return nil
	}
}

// NewGitHubClient creates a tracker client authenticated with the given token
func NewGitHubClient(ctx context.Context, token string, opts ...GitHubOption) (*GitHubClient, error) {
	if token == "" {
		return nil, errors.New(errors.ErrCodeTrackerAuth, "tracker access token is empty")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	c := &GitHubClient{client: github.NewClient(oauth2.NewClient(ctx, ts))}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "configure tracker client", err)
		}
	}

	return c, nil
}

// ListMilestones implements Client.ListMilestones
func (c *GitHubClient) ListMilestones(ctx context.Context, repo Repository, state string) ([]Milestone, error) {
	opts := &github.MilestoneListOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}

	var milestones []Milestone
	for {
		page, resp, err := c.client.Issues.ListMilestones(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTrackerList,
				fmt.Sprintf("list milestones in %s", repo.FullName()), err)
		}

		for _, m := range page {
			milestones = append(milestones, Milestone{
				Repo:   repo,
				Number: m.GetNumber(),
				Title:  m.GetTitle(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return milestones, nil
}

// CreateMilestone implements Client.CreateMilestone
func (c *GitHubClient) CreateMilestone(ctx context.Context, repo Repository, title, description string, dueOn *time.Time) (Milestone, error) {
	req := &github.Milestone{
		Title:       github.Ptr(title),
		Description: github.Ptr(description),
	}
	if dueOn != nil {
		req.DueOn = &github.Timestamp{Time: *dueOn}
	}

	created, _, err := c.client.Issues.CreateMilestone(ctx, repo.Owner, repo.Name, req)
	if err != nil {
		return Milestone{}, errors.Wrap(errors.ErrCodeTrackerCreate,
			fmt.Sprintf("create milestone %q in %s", title, repo.FullName()), err)
	}

	return Milestone{
		Repo:   repo,
		Number: created.GetNumber(),
		Title:  created.GetTitle(),
	}, nil
}

// ListOpenIssues implements Client.ListOpenIssues
func (c *GitHubClient) ListOpenIssues(ctx context.Context, repo Repository, labels []string, milestone MilestoneFilter) ([]Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		Labels:      labels,
		Milestone:   milestone.Query(),
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}

	var issues []Issue
	for {
		page, resp, err := c.client.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTrackerList,
				fmt.Sprintf("list open issues in %s", repo.FullName()), err)
		}

		for _, issue := range page {
			// The issues endpoint also returns pull requests
			if issue.IsPullRequest() {
				continue
			}
			issues = append(issues, Issue{
				Number: issue.GetNumber(),
				Title:  issue.GetTitle(),
				State:  issue.GetState(),
				URL:    issue.GetHTMLURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	return issues, nil
}

// CreateIssue implements Client.CreateIssue
func (c *GitHubClient) CreateIssue(ctx context.Context, repo Repository, issue NewIssue) (CreatedIssue, error) {
	req := &github.IssueRequest{
		Title:     github.Ptr(issue.Title),
		Milestone: issue.Milestone,
	}
	if issue.Body != "" {
		req.Body = github.Ptr(issue.Body)
	}
	if len(issue.Labels) > 0 {
		labels := issue.Labels
		req.Labels = &labels
	}

	created, _, err := c.client.Issues.Create(ctx, repo.Owner, repo.Name, req)
	if err != nil {
		return CreatedIssue{}, errors.Wrap(errors.ErrCodeTrackerCreate,
			fmt.Sprintf("create issue %q in %s", issue.Title, repo.FullName()), err)
	}

	return CreatedIssue{
		Repo:   repo,
		Number: created.GetNumber(),
		Title:  created.GetTitle(),
		URL:    created.GetHTMLURL(),
	}, nil
}
