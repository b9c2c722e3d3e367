package reconcile

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/felixgeelhaar/planforge/internal/log"
	"github.com/felixgeelhaar/planforge/internal/tracker"
)

func testLogger() *log.Logger {
	return log.New(log.Config{
		Level:  log.LevelError,
		Format: log.FormatText,
		Output: io.Discard,
	})
}

// fakeTracker is an in-memory tracker.Client. It assigns milestone and issue
// numbers per repository and records every call for assertions.
type fakeTracker struct {
	mu sync.Mutex

	milestones map[string][]tracker.Milestone
	issues     map[string][]fakeIssue

	listMilestonesErr error
	createMilestErr   error
	listIssuesErr     error
	createIssueErr    error

	listMilestonesCalls int
	createMilestCalls   int
	listIssuesCalls     int
	createIssueCalls    int

	lastNewIssue NewIssueCall
}

type fakeIssue struct {
	tracker.Issue
	labels    []string
	milestone *int
}

// NewIssueCall captures the arguments of the most recent CreateIssue call
type NewIssueCall struct {
	Repo  tracker.Repository
	Issue tracker.NewIssue
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		milestones: make(map[string][]tracker.Milestone),
		issues:     make(map[string][]fakeIssue),
	}
}

func (f *fakeTracker) seedMilestone(repo tracker.Repository, number int, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.milestones[repo.FullName()] = append(f.milestones[repo.FullName()], tracker.Milestone{
		Repo:   repo,
		Number: number,
		Title:  title,
	})
}

func (f *fakeTracker) seedIssue(repo tracker.Repository, issue tracker.Issue, labels []string, milestone *int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues[repo.FullName()] = append(f.issues[repo.FullName()], fakeIssue{
		Issue:     issue,
		labels:    labels,
		milestone: milestone,
	})
}

func (f *fakeTracker) ListMilestones(_ context.Context, repo tracker.Repository, _ string) ([]tracker.Milestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listMilestonesCalls++
	if f.listMilestonesErr != nil {
		return nil, f.listMilestonesErr
	}
	out := make([]tracker.Milestone, len(f.milestones[repo.FullName()]))
	copy(out, f.milestones[repo.FullName()])
	return out, nil
}

func (f *fakeTracker) CreateMilestone(_ context.Context, repo tracker.Repository, title, _ string, _ *time.Time) (tracker.Milestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createMilestCalls++
	if f.createMilestErr != nil {
		return tracker.Milestone{}, f.createMilestErr
	}
	created := tracker.Milestone{
		Repo:   repo,
		Number: len(f.milestones[repo.FullName()]) + 1,
		Title:  title,
	}
	f.milestones[repo.FullName()] = append(f.milestones[repo.FullName()], created)
	return created, nil
}

func (f *fakeTracker) ListOpenIssues(_ context.Context, repo tracker.Repository, labels []string, milestone tracker.MilestoneFilter) ([]tracker.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listIssuesCalls++
	if f.listIssuesErr != nil {
		return nil, f.listIssuesErr
	}

	var out []tracker.Issue
	for _, issue := range f.issues[repo.FullName()] {
		if issue.State != "open" {
			continue
		}
		if !hasAllLabels(issue.labels, labels) {
			continue
		}
		if !milestoneMatches(issue.milestone, milestone) {
			continue
		}
		out = append(out, issue.Issue)
	}
	return out, nil
}

func (f *fakeTracker) CreateIssue(_ context.Context, repo tracker.Repository, issue tracker.NewIssue) (tracker.CreatedIssue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createIssueCalls++
	f.lastNewIssue = NewIssueCall{Repo: repo, Issue: issue}
	if f.createIssueErr != nil {
		return tracker.CreatedIssue{}, f.createIssueErr
	}
	number := len(f.issues[repo.FullName()]) + 1
	f.issues[repo.FullName()] = append(f.issues[repo.FullName()], fakeIssue{
		Issue: tracker.Issue{
			Number: number,
			Title:  issue.Title,
			State:  "open",
		},
		labels:    issue.Labels,
		milestone: issue.Milestone,
	})
	return tracker.CreatedIssue{
		Repo:   repo,
		Number: number,
		Title:  issue.Title,
		URL:    "https://github.com/" + repo.FullName() + "/issues/1",
	}, nil
}

func hasAllLabels(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func milestoneMatches(number *int, filter tracker.MilestoneFilter) bool {
	if filter.Query() == "none" {
		return number == nil
	}
	if number == nil {
		return false
	}
	return filter.Query() == tracker.FilterMilestone(*number).Query()
}

// fakeLinker records linked issues and can fail on demand
type fakeLinker struct {
	mu     sync.Mutex
	linked []tracker.CreatedIssue
	err    error
}

func (f *fakeLinker) Link(_ context.Context, issue tracker.CreatedIssue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.linked = append(f.linked, issue)
	return nil
}
