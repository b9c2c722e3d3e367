package plan

import (
	"context"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/planforge/internal/errors"
	"github.com/felixgeelhaar/planforge/internal/log"
	"github.com/felixgeelhaar/planforge/internal/provider"
)

// Extractor converts free-form requirements text into a structured Plan
// using a generative-text backend. Every failure is fatal: the plan is the
// root of all downstream work, so a corrupt plan cannot be partially trusted.
type Extractor struct {
	client provider.Client
	model  string
	logger *log.Logger

	// now is injectable so prompts are reproducible in tests
	now func() time.Time
}

// NewExtractor creates a new Extractor backed by the given provider client
func NewExtractor(client provider.Client, model string, logger *log.Logger) *Extractor {
	return &Extractor{
		client: client,
		model:  model,
		logger: logger,
		now:    time.Now,
	}
}

// Extract sends the requirements text to the generative backend and parses
// the structured reply. There is no retry; a single failure terminates the
// run.
func (e *Extractor) Extract(ctx context.Context, requirements string) (*Plan, error) {
	prompt := buildPrompt(requirements, e.now())

	e.logger.Info("extracting plan from requirements",
		"model", e.model,
		"requirements_bytes", len(requirements))

	resp, err := e.client.Generate(ctx, &provider.GenerateRequest{
		Prompt:      prompt,
		Model:       e.model,
		Temperature: 0.1,
		JSONOutput:  true,
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("raw generator response", "content", resp.Content, "tokens", resp.TokensUsed)

	p, err := parsePlan(resp.Content)
	if err != nil {
		return nil, err
	}

	e.logger.Info("plan extracted",
		"milestones", len(p.Milestones),
		"tasks", len(p.Tasks))

	return p, nil
}

// parsePlan decodes and validates a generator reply
func parsePlan(content string) (*Plan, error) {
	raw := []byte(content)

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		// The directive asks for bare JSON, but models occasionally wrap
		// the payload in a fenced code block anyway.
		extracted := extractJSONFromMarkdown(content)
		if extracted == "" {
			return nil, errors.NewExtractUnparsableError(err)
		}
		raw = []byte(extracted)
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.NewExtractUnparsableError(err)
		}
	}

	if err := validateShape(doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExtractSchema, "generator reply does not match the plan schema", err)
	}

	var p Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errors.NewExtractUnparsableError(err)
	}

	return &p, nil
}
