package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/planforge/internal/log"
	"github.com/felixgeelhaar/planforge/internal/plan"
	"github.com/felixgeelhaar/planforge/internal/tracker"
)

// State is the orchestrator's phase within a run
type State int

const (
	// StateIdle means no run has started yet
	StateIdle State = iota
	// StateReconcilingMilestones means milestone specs are being fanned out
	StateReconcilingMilestones
	// StateReconcilingTasks means task specs are being walked in plan order
	StateReconcilingTasks
	// StateDone means the full plan walk completed
	StateDone
	// StateAborted means a fatal condition ended the run early
	StateAborted
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReconcilingMilestones:
		return "reconciling_milestones"
	case StateReconcilingTasks:
		return "reconciling_tasks"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Linker is the board sink for newly created issues. Any error it returns
// aborts the run.
type Linker interface {
	Link(ctx context.Context, issue tracker.CreatedIssue) error
}

// Orchestrator drives one run: all milestones first, grouped by name and
// fanned out to every declared target repository, then all tasks in plan
// order. Strictly sequential; every external call completes before the next
// step begins.
type Orchestrator struct {
	repos      map[string]tracker.Repository
	milestones *MilestoneReconciler
	issues     *IssueReconciler
	linker     Linker
	logger     *log.Logger

	state State

	// handles maps milestone name -> repository key -> reconciled milestone.
	// Populated during StateReconcilingMilestones, read-only afterwards,
	// discarded when the run ends.
	handles map[string]map[string]tracker.Milestone
}

// NewOrchestrator creates an Orchestrator over the given repositories
func NewOrchestrator(repos map[string]tracker.Repository, client tracker.Client, linker Linker, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		repos:      repos,
		milestones: NewMilestoneReconciler(client, logger),
		issues:     NewIssueReconciler(client, logger),
		linker:     linker,
		logger:     logger,
		state:      StateIdle,
	}
}

// State returns the orchestrator's current phase
func (o *Orchestrator) State() State {
	return o.state
}

// Run walks the plan to completion. The returned Summary is valid even when
// err is non-nil; it records how far the run got before aborting.
func (o *Orchestrator) Run(ctx context.Context, p *plan.Plan) (*Summary, error) {
	started := time.Now()
	summary := &Summary{RunID: uuid.NewString()}
	logger := o.logger.With("run_id", summary.RunID)

	o.handles = make(map[string]map[string]tracker.Milestone)

	logger.Info("run started",
		"milestone_specs", len(p.Milestones),
		"task_specs", len(p.Tasks))

	o.state = StateReconcilingMilestones
	if err := o.reconcileMilestones(ctx, p, summary, logger); err != nil {
		o.state = StateAborted
		summary.Duration = time.Since(started)
		return summary, err
	}

	o.state = StateReconcilingTasks
	if err := o.reconcileTasks(ctx, p, summary, logger); err != nil {
		o.state = StateAborted
		summary.Duration = time.Since(started)
		return summary, err
	}

	o.state = StateDone
	summary.Duration = time.Since(started)

	logger.Info("run complete",
		"milestones_created", summary.MilestonesCreated,
		"issues_created", summary.IssuesCreated,
		"board_items_added", summary.BoardItemsAdded,
		"warnings", summary.Warnings,
		"duration", summary.Duration)

	return summary, nil
}

func (o *Orchestrator) reconcileMilestones(ctx context.Context, p *plan.Plan, summary *Summary, logger *log.Logger) error {
	for _, spec := range p.Milestones {
		if err := ctx.Err(); err != nil {
			return err
		}

		if spec.Name == "" {
			logger.Warn("skipping milestone spec with empty name")
			summary.MilestonesSkipped++
			summary.Warnings++
			continue
		}

		o.handles[spec.Name] = make(map[string]tracker.Milestone)

		for _, repoKey := range spec.TargetRepositories {
			repo, ok := o.repos[repoKey]
			if !ok {
				logger.Warn("unknown target repository for milestone",
					"milestone", spec.Name, "repository_key", repoKey)
				summary.MilestonesSkipped++
				summary.Warnings++
				continue
			}

			outcome := o.milestones.Reconcile(ctx, repo, spec)
			summary.recordMilestone(outcome)

			if outcome.Handle != nil {
				o.handles[spec.Name][repoKey] = *outcome.Handle
			}
		}
	}
	return nil
}

func (o *Orchestrator) reconcileTasks(ctx context.Context, p *plan.Plan, summary *Summary, logger *log.Logger) error {
	for _, task := range p.Tasks {
		if err := ctx.Err(); err != nil {
			return err
		}

		if task.Title == "" || task.TargetRepository == "" {
			logger.Warn("skipping task with missing title or target repository",
				"task", task.Title)
			summary.IssuesSkipped++
			summary.Warnings++
			continue
		}

		repo, ok := o.repos[task.TargetRepository]
		if !ok {
			logger.Warn("unknown target repository for task",
				"task", task.Title, "repository_key", task.TargetRepository)
			summary.IssuesSkipped++
			summary.Warnings++
			continue
		}

		outcome := o.issues.Reconcile(ctx, repo, task, o.lookupHandle(task))
		summary.recordIssue(outcome)

		// Only a freshly created issue gets a board item; a pre-existing
		// issue is never re-linked.
		if outcome.Result != ResultCreated {
			continue
		}

		if err := o.linker.Link(ctx, *outcome.Issue); err != nil {
			return err
		}
		summary.BoardItemsAdded++
	}
	return nil
}

// lookupHandle resolves the task's milestone via the per-run table. An empty
// or unknown milestone name resolves to "no milestone" rather than erroring.
func (o *Orchestrator) lookupHandle(task plan.TaskSpec) *tracker.Milestone {
	if task.MilestoneName == "" {
		return nil
	}

	byRepo, ok := o.handles[task.MilestoneName]
	if !ok {
		return nil
	}

	handle, ok := byRepo[task.TargetRepository]
	if !ok {
		return nil
	}

	return &handle
}
