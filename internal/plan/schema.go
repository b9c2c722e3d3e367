package plan

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// planSchema constrains the generator's reply before it is trusted. The
// generator is unreliable; structural problems are caught here rather than
// surfacing later as half-reconciled tracker state.
const planSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["milestones", "tasks"],
  "properties": {
    "milestones": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"},
          "target_repositories": {
            "type": "array",
            "items": {"type": "string"}
          },
          "due_on": {"type": "string"}
        }
      }
    },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "description": {"type": "string"},
          "target_repository": {"type": "string"},
          "assignee_candidate": {"type": "string"},
          "priority": {"type": "string"},
          "milestone_name": {"type": "string"},
          "task_granularity": {"type": "string"},
          "status": {"type": "string"}
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("plan.schema.json", planSchema)

// validateShape checks a decoded generator reply against the plan schema
func validateShape(doc any) error {
	return compiledSchema.Validate(doc)
}
