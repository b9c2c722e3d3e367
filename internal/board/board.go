package board

import "context"

// Board is an organization-level kanban-style collection of item references
// spanning repositories.
type Board struct {
	// ID is the opaque board identifier
	ID string
	// Number is the board number used when adding items
	Number int
	// Title is the human-readable board name
	Title string
	// OwnerLogin is the login of the owning organization
	OwnerLogin string
}

// Client is the board boundary. No server-side filter by name is assumed
// available; resolution is list-then-match.
type Client interface {
	// ListBoards enumerates all boards owned by the given organization
	ListBoards(ctx context.Context, owner string) ([]Board, error)

	// AddItem attaches an issue, by its canonical URL, to a board as a new item
	AddItem(ctx context.Context, boardNumber int, owner, issueURL string) error
}
