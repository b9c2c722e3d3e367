package plan

// UnassignedCandidate is the sentinel value the generator uses for tasks
// without an assignee suggestion. It never becomes a label.
const UnassignedCandidate = "unassigned"

// Plan is the parsed generator output: an ordered set of milestone specs and
// an ordered set of task specs. Immutable once parsed.
type Plan struct {
	Milestones []MilestoneSpec `json:"milestones"`
	Tasks      []TaskSpec      `json:"tasks"`
}

// MilestoneSpec describes one milestone the generator proposed. Name is the
// natural-language dedup key; the same name fans out to every repository
// listed in TargetRepositories.
type MilestoneSpec struct {
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	TargetRepositories []string `json:"target_repositories,omitempty"`
	DueOn              string   `json:"due_on,omitempty"`
}

// TaskSpec describes one task the generator proposed. Title is the dedup key.
type TaskSpec struct {
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	TargetRepository  string `json:"target_repository"`
	AssigneeCandidate string `json:"assignee_candidate,omitempty"`
	Priority          string `json:"priority,omitempty"`
	MilestoneName     string `json:"milestone_name,omitempty"`
	TaskGranularity   string `json:"task_granularity,omitempty"`
	Status            string `json:"status,omitempty"`
}

// Labels derives the label set attached at issue creation time and used for
// the duplicate search. Labels are derived, never source-of-truth.
func (t TaskSpec) Labels() []string {
	var labels []string

	if t.AssigneeCandidate != "" && t.AssigneeCandidate != UnassignedCandidate {
		labels = append(labels, t.AssigneeCandidate)
	}
	if t.Priority != "" {
		labels = append(labels, "priority:"+t.Priority)
	}
	if t.TaskGranularity != "" {
		labels = append(labels, "granularity:"+t.TaskGranularity)
	} else if t.Status != "" {
		labels = append(labels, "status:"+t.Status)
	}

	return labels
}
