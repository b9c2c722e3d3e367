package reconcile

import (
	"context"

	"github.com/felixgeelhaar/planforge/internal/log"
	"github.com/felixgeelhaar/planforge/internal/plan"
	"github.com/felixgeelhaar/planforge/internal/tracker"
)

// IssueReconciler materializes task specs against the tracker. An issue is
// considered a duplicate iff its exact title appears among currently open
// issues sharing the same derived label set and the same milestone
// association (explicit "none" counts as a match class).
type IssueReconciler struct {
	tracker tracker.Client
	logger  *log.Logger
}

// NewIssueReconciler creates an IssueReconciler
func NewIssueReconciler(client tracker.Client, logger *log.Logger) *IssueReconciler {
	return &IssueReconciler{
		tracker: client,
		logger:  logger,
	}
}

// Reconcile performs the duplicate check and creates the issue if no
// duplicate is found. Tracker errors during search or creation are
// recoverable; the run continues with the next task.
func (r *IssueReconciler) Reconcile(ctx context.Context, repo tracker.Repository, task plan.TaskSpec, milestone *tracker.Milestone) IssueOutcome {
	if task.Title == "" {
		r.logger.Warn("skipping task with empty title", "repo", repo.FullName())
		return IssueOutcome{Result: ResultSkipped, Reason: "task title is empty"}
	}

	labels := task.Labels()

	filter := tracker.FilterNoMilestone()
	if milestone != nil {
		filter = tracker.FilterMilestone(milestone.Number)
	}

	existing, err := r.tracker.ListOpenIssues(ctx, repo, labels, filter)
	if err != nil {
		r.logger.WithError(err).Warn("duplicate search failed, skipping task",
			"task", task.Title, "repo", repo.FullName())
		return IssueOutcome{Result: ResultFailed, Reason: err.Error()}
	}

	for _, issue := range existing {
		if issue.Title == task.Title {
			r.logger.Info("issue already exists, skipping creation",
				"task", task.Title, "repo", repo.FullName(), "number", issue.Number)
			return IssueOutcome{Result: ResultFoundExisting}
		}
	}

	var milestoneNumber *int
	if milestone != nil {
		milestoneNumber = &milestone.Number
	}

	created, err := r.tracker.CreateIssue(ctx, repo, tracker.NewIssue{
		Title:     task.Title,
		Body:      task.Description,
		Labels:    labels,
		Milestone: milestoneNumber,
	})
	if err != nil {
		r.logger.WithError(err).Warn("issue creation failed, skipping task",
			"task", task.Title, "repo", repo.FullName())
		return IssueOutcome{Result: ResultFailed, Reason: err.Error()}
	}

	r.logger.Info("issue created",
		"task", created.Title, "repo", repo.FullName(), "number", created.Number, "labels", labels)

	return IssueOutcome{Result: ResultCreated, Issue: &created}
}
