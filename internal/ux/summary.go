package ux

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/planforge/internal/reconcile"
)

// SummaryRenderer renders a run summary for the terminal
type SummaryRenderer struct {
	noColor bool
}

// NewSummaryRenderer creates a SummaryRenderer. When noColor is set, all
// styling is stripped.
func NewSummaryRenderer(noColor bool) *SummaryRenderer {
	return &SummaryRenderer{noColor: noColor}
}

func (r *SummaryRenderer) style(color string) lipgloss.Style {
	if r.noColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Render returns the human-readable summary block
func (r *SummaryRenderer) Render(summary *reconcile.Summary) string {
	titleStyle := r.style("86").Bold(!r.noColor)
	labelStyle := r.style("8")
	createdStyle := r.style("2")
	warnStyle := r.style("3")

	var b strings.Builder

	b.WriteString(titleStyle.Render("Plan reconciliation complete") + "\n\n")

	b.WriteString(labelStyle.Render("Milestones:") + " ")
	b.WriteString(fmt.Sprintf("%s created, %d existing, %d skipped, %d failed\n",
		createdStyle.Render(fmt.Sprintf("%d", summary.MilestonesCreated)),
		summary.MilestonesExisting, summary.MilestonesSkipped, summary.MilestonesFailed))

	b.WriteString(labelStyle.Render("Issues:") + "     ")
	b.WriteString(fmt.Sprintf("%s created, %d existing, %d skipped, %d failed\n",
		createdStyle.Render(fmt.Sprintf("%d", summary.IssuesCreated)),
		summary.IssuesExisting, summary.IssuesSkipped, summary.IssuesFailed))

	b.WriteString(labelStyle.Render("Board:") + "      ")
	b.WriteString(fmt.Sprintf("%d items added\n", summary.BoardItemsAdded))

	if summary.Warnings > 0 {
		b.WriteString("\n" + warnStyle.Render(fmt.Sprintf("%d warning(s) logged; see output above", summary.Warnings)) + "\n")
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("\nrun %s finished in %s\n",
		summary.RunID, summary.Duration.Round(time.Millisecond))))

	return b.String()
}
