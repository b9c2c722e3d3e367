package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/planforge/internal/errors"
	"github.com/felixgeelhaar/planforge/internal/log"
)

// commandRunner abstracts subprocess execution so the CLI adapter is
// testable without a gh binary.
type commandRunner interface {
	run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s %s: %s", name, strings.Join(args, " "), msg)
	}

	return stdout.Bytes(), nil
}

// ghProjectList mirrors the JSON payload of `gh project list --format json`
type ghProjectList struct {
	Projects []ghProject `json:"projects"`
}

type ghProject struct {
	ID     string  `json:"id"`
	Number int     `json:"number"`
	Title  string  `json:"title"`
	Owner  ghOwner `json:"owner"`
}

type ghOwner struct {
	Login string `json:"login"`
}

// GHClient implements Client by shelling out to the gh CLI
type GHClient struct {
	runner commandRunner
	logger *log.Logger
}

// NewGHClient creates a board client backed by the gh binary on PATH
func NewGHClient(logger *log.Logger) *GHClient {
	return &GHClient{
		runner: execRunner{},
		logger: logger,
	}
}

// ListBoards implements Client.ListBoards
func (c *GHClient) ListBoards(ctx context.Context, owner string) ([]Board, error) {
	out, err := c.runner.run(ctx, "gh", "project", "list", "--owner", owner, "--format", "json")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBoardList, fmt.Sprintf("list boards for %q", owner), err)
	}

	if len(bytes.TrimSpace(out)) == 0 {
		return nil, errors.New(errors.ErrCodeBoardList,
			fmt.Sprintf("board listing for %q returned no output", owner))
	}

	var payload ghProjectList
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBoardMalformed,
			fmt.Sprintf("parse board listing for %q", owner), err)
	}

	boards := make([]Board, 0, len(payload.Projects))
	for _, p := range payload.Projects {
		boards = append(boards, Board{
			ID:         p.ID,
			Number:     p.Number,
			Title:      p.Title,
			OwnerLogin: p.Owner.Login,
		})
	}

	c.logger.Debug("boards listed", "owner", owner, "count", len(boards))
	return boards, nil
}

// AddItem implements Client.AddItem
func (c *GHClient) AddItem(ctx context.Context, boardNumber int, owner, issueURL string) error {
	_, err := c.runner.run(ctx, "gh", "project", "item-add", strconv.Itoa(boardNumber),
		"--owner", owner, "--url", issueURL)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBoardAddItem,
			fmt.Sprintf("add %s to board %d", issueURL, boardNumber), err)
	}
	return nil
}
