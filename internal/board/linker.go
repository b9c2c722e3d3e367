package board

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/planforge/internal/errors"
	"github.com/felixgeelhaar/planforge/internal/log"
	"github.com/felixgeelhaar/planforge/internal/tracker"
)

// Linker attaches newly created issues to the configured board. The board is
// a required sink: any resolution or attachment failure is fatal for the
// whole run, a deliberate asymmetry versus milestone reconciliation.
type Linker struct {
	client    Client
	owner     string
	boardName string
	logger    *log.Logger

	// resolved caches the board after the first successful lookup;
	// resolution is lazy, on the first created issue.
	resolved *Board
}

// NewLinker creates a Linker for the named board owned by owner
func NewLinker(client Client, owner, boardName string, logger *log.Logger) *Linker {
	return &Linker{
		client:    client,
		owner:     owner,
		boardName: boardName,
		logger:    logger,
	}
}

// Link attaches the given issue to the board as a new item
func (l *Linker) Link(ctx context.Context, issue tracker.CreatedIssue) error {
	board, err := l.resolve(ctx)
	if err != nil {
		return err
	}

	if err := l.client.AddItem(ctx, board.Number, l.owner, issue.URL); err != nil {
		return err
	}

	l.logger.Info("issue added to board",
		"board", board.Title,
		"board_number", board.Number,
		"issue", issue.Title,
		"issue_number", issue.Number,
		"repo", issue.Repo.FullName())

	return nil
}

func (l *Linker) resolve(ctx context.Context) (*Board, error) {
	if l.resolved != nil {
		return l.resolved, nil
	}

	boards, err := l.client.ListBoards(ctx, l.owner)
	if err != nil {
		return nil, err
	}

	for _, b := range boards {
		if b.OwnerLogin != l.owner || b.Title != l.boardName {
			continue
		}
		if b.ID == "" || b.Number == 0 {
			return nil, errors.New(errors.ErrCodeBoardMalformed,
				fmt.Sprintf("board %q matched but is missing its identifier or number", l.boardName))
		}
		matched := b
		l.resolved = &matched
		l.logger.Info("board resolved", "board", b.Title, "board_number", b.Number)
		return l.resolved, nil
	}

	return nil, errors.NewBoardNotFoundError(l.owner, l.boardName)
}
