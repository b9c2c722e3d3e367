package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskSpecLabels(t *testing.T) {
	tests := []struct {
		name string
		task TaskSpec
		want []string
	}{
		{
			name: "all label sources present",
			task: TaskSpec{AssigneeCandidate: "backend", Priority: "high", TaskGranularity: "medium"},
			want: []string{"backend", "priority:high", "granularity:medium"},
		},
		{
			name: "unassigned candidate produces no label",
			task: TaskSpec{AssigneeCandidate: UnassignedCandidate, Priority: "low"},
			want: []string{"priority:low"},
		},
		{
			name: "status substitutes for missing granularity",
			task: TaskSpec{Status: "blocked"},
			want: []string{"status:blocked"},
		},
		{
			name: "granularity wins over status",
			task: TaskSpec{TaskGranularity: "small", Status: "blocked"},
			want: []string{"granularity:small"},
		},
		{
			name: "nothing to derive",
			task: TaskSpec{Title: "T"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.Labels())
		})
	}
}
