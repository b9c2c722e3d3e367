package plan

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// buildPrompt creates the extraction prompt: the fixed field schema, a JSON
// example, and the verbatim requirements text.
func buildPrompt(requirements string, now time.Time) string {
	return fmt.Sprintf(`From the following requirements document, extract the major milestones (goals) and the detailed tasks (issues) that belong to them, as JSON.

A **milestone** has these fields:
- "name": milestone title (string, required)
- "description": milestone description (string, optional)
- "target_repositories": repositories this milestone applies to (example: ["frontend", "backend"])
- "due_on": milestone due date (string in YYYY-MM-DD format, optional)

A **task** has these fields:
- "title": issue title (string, required)
- "description": issue description (string, optional)
- "target_repository": repository this task belongs to ("frontend" or "backend")
- "assignee_candidate": suggested owner role ("frontend", "backend", or "unassigned")
- "priority": task priority ("high", "medium", or "low", optional)
- "milestone_name": the "name" of the milestone this task belongs to (string, empty string "" when none)
- "task_granularity": task size ("small" for 2-4 hours, "medium" for one to a few days, "large" for work that splits into several detailed tasks)

JSON format example:
{
  "milestones": [
    {
      "name": "OAuth sign-in complete",
      "description": "Users can sign in with an external identity provider",
      "target_repositories": ["frontend", "backend"],
      "due_on": "%s"
    }
  ],
  "tasks": [
    {
      "title": "Backend: implement OAuth callback handling",
      "description": "Exchange the authorization code for a session. Done when a user session is established.",
      "target_repository": "backend",
      "assignee_candidate": "backend",
      "priority": "high",
      "milestone_name": "OAuth sign-in complete",
      "task_granularity": "medium"
    },
    {
      "title": "Write the project README",
      "description": "Describe the purpose and concepts of the project",
      "target_repository": "frontend",
      "assignee_candidate": "frontend",
      "priority": "medium",
      "milestone_name": "",
      "task_granularity": "small"
    }
  ]
}

Important:
- Return ONLY the JSON, no additional text or markdown
- Ensure all strings are properly quoted
- Every milestone referenced by a task's milestone_name must appear in "milestones"

Requirements document:
%s`, now.Format("2006-01-02"), requirements)
}

// extractJSONFromMarkdown attempts to extract JSON from markdown code blocks
func extractJSONFromMarkdown(content string) string {
	jsonBlockRegex := regexp.MustCompile("```(?:json)?\\s*\\n([\\s\\S]*?)```")
	matches := jsonBlockRegex.FindStringSubmatch(content)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// Fall back to the first balanced { ... } block
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}

	braceCount := 0
	for i := start; i < len(content); i++ {
		if content[i] == '{' {
			braceCount++
		} else if content[i] == '}' {
			braceCount--
			if braceCount == 0 {
				return content[start : i+1]
			}
		}
	}

	return ""
}
