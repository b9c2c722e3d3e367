package reconcile

import (
	"time"

	"github.com/felixgeelhaar/planforge/internal/tracker"
)

// Result classifies the outcome of reconciling one proposed object against
// the tracker. Title-as-key dedup is a best-effort heuristic, not a unique
// index; the race window is made visible here instead of being papered over.
type Result int

const (
	// ResultCreated means the object was created on the tracker
	ResultCreated Result = iota
	// ResultFoundExisting means an exact-title match already existed
	ResultFoundExisting
	// ResultAmbiguousMatch means several existing objects carried the title;
	// the one with the lowest number was picked deterministically
	ResultAmbiguousMatch
	// ResultSkipped means the spec was invalid and nothing was attempted
	ResultSkipped
	// ResultFailed means the tracker rejected the operation (recoverable)
	ResultFailed
)

// String returns the string representation of the result
func (r Result) String() string {
	switch r {
	case ResultCreated:
		return "created"
	case ResultFoundExisting:
		return "found_existing"
	case ResultAmbiguousMatch:
		return "ambiguous_match"
	case ResultSkipped:
		return "skipped"
	case ResultFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MilestoneOutcome is the result of reconciling one (milestone spec,
// repository) pair. Handle is nil unless the milestone was created or found.
type MilestoneOutcome struct {
	Result Result
	Handle *tracker.Milestone
	Reason string
}

// IssueOutcome is the result of reconciling one task spec. Issue is non-nil
// only for ResultCreated; a pre-existing issue is never re-linked.
type IssueOutcome struct {
	Result Result
	Issue  *tracker.CreatedIssue
	Reason string
}

// Summary aggregates what a single run did. It is the caller-facing record
// of partial completion.
type Summary struct {
	RunID string

	MilestonesCreated  int
	MilestonesExisting int
	MilestonesSkipped  int
	MilestonesFailed   int

	IssuesCreated  int
	IssuesExisting int
	IssuesSkipped  int
	IssuesFailed   int

	BoardItemsAdded int
	Warnings        int

	Duration time.Duration
}

func (s *Summary) recordMilestone(outcome MilestoneOutcome) {
	switch outcome.Result {
	case ResultCreated:
		s.MilestonesCreated++
	case ResultFoundExisting, ResultAmbiguousMatch:
		s.MilestonesExisting++
	case ResultSkipped:
		s.MilestonesSkipped++
		s.Warnings++
	case ResultFailed:
		s.MilestonesFailed++
		s.Warnings++
	}
}

func (s *Summary) recordIssue(outcome IssueOutcome) {
	switch outcome.Result {
	case ResultCreated:
		s.IssuesCreated++
	case ResultFoundExisting:
		s.IssuesExisting++
	case ResultSkipped:
		s.IssuesSkipped++
		s.Warnings++
	case ResultFailed:
		s.IssuesFailed++
		s.Warnings++
	}
}
