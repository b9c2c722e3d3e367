package reconcile

import (
	"context"
	"time"

	"github.com/felixgeelhaar/planforge/internal/log"
	"github.com/felixgeelhaar/planforge/internal/plan"
	"github.com/felixgeelhaar/planforge/internal/tracker"
)

// dueDateLayout is the calendar-date format the generator is asked to emit
const dueDateLayout = "2006-01-02"

// MilestoneReconciler materializes milestone specs against the tracker.
// Every failure here is recoverable: a missing milestone only means the
// spec's tasks are created without a milestone link.
type MilestoneReconciler struct {
	tracker tracker.Client
	logger  *log.Logger
}

// NewMilestoneReconciler creates a MilestoneReconciler
func NewMilestoneReconciler(client tracker.Client, logger *log.Logger) *MilestoneReconciler {
	return &MilestoneReconciler{
		tracker: client,
		logger:  logger,
	}
}

// Reconcile looks up an existing milestone by exact title within the
// repository, creating it if absent. Existing duplicates are tolerated: the
// lowest-numbered match wins deterministically.
func (r *MilestoneReconciler) Reconcile(ctx context.Context, repo tracker.Repository, spec plan.MilestoneSpec) MilestoneOutcome {
	if spec.Name == "" {
		r.logger.Warn("skipping milestone with empty name", "repo", repo.FullName())
		return MilestoneOutcome{Result: ResultSkipped, Reason: "milestone name is empty"}
	}

	// All states: a closed milestone with this title still counts as existing.
	existing, err := r.tracker.ListMilestones(ctx, repo, tracker.MilestoneStateAll)
	if err != nil {
		r.logger.WithError(err).Warn("milestone lookup failed",
			"milestone", spec.Name, "repo", repo.FullName())
		return MilestoneOutcome{Result: ResultFailed, Reason: err.Error()}
	}

	if match, count := lowestNumberedMatch(existing, spec.Name); match != nil {
		result := ResultFoundExisting
		if count > 1 {
			result = ResultAmbiguousMatch
			r.logger.Warn("multiple milestones share one title, picking lowest number",
				"milestone", spec.Name, "repo", repo.FullName(), "matches", count, "picked", match.Number)
		} else {
			r.logger.Info("milestone already exists",
				"milestone", spec.Name, "repo", repo.FullName(), "number", match.Number)
		}
		return MilestoneOutcome{Result: result, Handle: match}
	}

	dueOn := r.parseDueDate(spec)

	created, err := r.tracker.CreateMilestone(ctx, repo, spec.Name, spec.Description, dueOn)
	if err != nil {
		r.logger.WithError(err).Warn("milestone creation failed",
			"milestone", spec.Name, "repo", repo.FullName())
		return MilestoneOutcome{Result: ResultFailed, Reason: err.Error()}
	}

	r.logger.Info("milestone created",
		"milestone", created.Title, "repo", repo.FullName(), "number", created.Number)

	return MilestoneOutcome{Result: ResultCreated, Handle: &created}
}

// parseDueDate parses the spec's ISO calendar date. A malformed date is
// downgraded to "no due date" with a warning, never fatal.
func (r *MilestoneReconciler) parseDueDate(spec plan.MilestoneSpec) *time.Time {
	if spec.DueOn == "" {
		return nil
	}

	due, err := time.Parse(dueDateLayout, spec.DueOn)
	if err != nil {
		r.logger.Warn("invalid due date on milestone, creating without one",
			"milestone", spec.Name, "due_on", spec.DueOn)
		return nil
	}
	return &due
}

// lowestNumberedMatch returns the exact-title match with the lowest number
// and the total number of matches.
func lowestNumberedMatch(milestones []tracker.Milestone, title string) (*tracker.Milestone, int) {
	var best *tracker.Milestone
	count := 0

	for i := range milestones {
		if milestones[i].Title != title {
			continue
		}
		count++
		if best == nil || milestones[i].Number < best.Number {
			best = &milestones[i]
		}
	}

	return best, count
}
