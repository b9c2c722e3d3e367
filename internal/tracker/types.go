package tracker

import (
	"context"
	"strconv"
	"time"
)

// MilestoneStateAll lists milestones regardless of open/closed state
const MilestoneStateAll = "all"

// Repository is an opaque handle to one tracker-side repository, bound once
// at startup per configured repository key and read-only for the whole run.
type Repository struct {
	// Key is the logical role identifier ("frontend" or "backend")
	Key string
	// Owner is the organization that owns the repository
	Owner string
	// Name is the repository name
	Name string
}

// FullName returns the owner-qualified repository name
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// Milestone is a tracker-side milestone. A milestone title is unique only
// within a repository; the same title in two repositories is two milestones.
type Milestone struct {
	Repo   Repository
	Number int
	Title  string
}

// Issue is a tracker-side issue as seen by the duplicate search
type Issue struct {
	Number int
	Title  string
	State  string
	URL    string
}

// CreatedIssue is the tracker-side issue returned after creation
type CreatedIssue struct {
	Repo   Repository
	Number int
	Title  string
	URL    string
}

// NewIssue describes an issue to create. An empty Body is transmitted as
// "field not supplied" rather than an empty string; the backend distinguishes
// the two.
type NewIssue struct {
	Title     string
	Body      string
	Labels    []string
	Milestone *int
}

// MilestoneFilter scopes an issue search to a concrete milestone or to
// issues with explicitly no milestone.
type MilestoneFilter struct {
	number int
	none   bool
}

// FilterMilestone restricts the search to one milestone number
func FilterMilestone(number int) MilestoneFilter {
	return MilestoneFilter{number: number}
}

// FilterNoMilestone restricts the search to issues without a milestone
func FilterNoMilestone() MilestoneFilter {
	return MilestoneFilter{none: true}
}

// Query renders the filter in the tracker's list-issues query syntax
func (f MilestoneFilter) Query() string {
	if f.none {
		return "none"
	}
	return strconv.Itoa(f.number)
}

// Client is the tracker boundary. Implementations are thin pass-through
// adapters; all reconciliation logic lives above this interface.
type Client interface {
	// ListMilestones lists milestones in a repository filtered by state
	ListMilestones(ctx context.Context, repo Repository, state string) ([]Milestone, error)

	// CreateMilestone creates a milestone. dueOn may be nil.
	CreateMilestone(ctx context.Context, repo Repository, title, description string, dueOn *time.Time) (Milestone, error)

	// ListOpenIssues lists open issues restricted to a label set and a milestone filter
	ListOpenIssues(ctx context.Context, repo Repository, labels []string, milestone MilestoneFilter) ([]Issue, error)

	// CreateIssue creates an issue
	CreateIssue(ctx context.Context, repo Repository, issue NewIssue) (CreatedIssue, error)
}
