package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/planforge/internal/errors"
	"github.com/felixgeelhaar/planforge/internal/log"
	"github.com/felixgeelhaar/planforge/internal/tracker"
)

// fakeBoardClient implements Client in memory
type fakeBoardClient struct {
	boards    []Board
	listErr   error
	addErr    error
	listCalls int
	added     []string
}

func (f *fakeBoardClient) ListBoards(ctx context.Context, owner string) ([]Board, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.boards, nil
}

func (f *fakeBoardClient) AddItem(ctx context.Context, boardNumber int, owner, issueURL string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, issueURL)
	return nil
}

var testIssue = tracker.CreatedIssue{
	Repo:   tracker.Repository{Key: "backend", Owner: "acme", Name: "acme-api"},
	Number: 42,
	Title:  "T1",
	URL:    "https://github.com/acme/acme-api/issues/42",
}

func TestLinkResolvesAndCaches(t *testing.T) {
	client := &fakeBoardClient{boards: []Board{
		{ID: "PVT_x", Number: 1, Title: "Other", OwnerLogin: "acme"},
		{ID: "PVT_y", Number: 2, Title: "Roadmap", OwnerLogin: "acme"},
	}}
	linker := NewLinker(client, "acme", "Roadmap", log.Default())

	require.NoError(t, linker.Link(context.Background(), testIssue))
	require.NoError(t, linker.Link(context.Background(), testIssue))

	// The board listing happens once; the resolution is cached for the run.
	assert.Equal(t, 1, client.listCalls)
	assert.Len(t, client.added, 2)
}

func TestLinkBoardNotFound(t *testing.T) {
	client := &fakeBoardClient{boards: []Board{
		{ID: "PVT_x", Number: 1, Title: "Roadmap", OwnerLogin: "someone-else"},
	}}
	linker := NewLinker(client, "acme", "Roadmap", log.Default())

	err := linker.Link(context.Background(), testIssue)
	require.Error(t, err)

	var forgeErr *errors.ForgeError
	require.ErrorAs(t, err, &forgeErr)
	assert.Equal(t, errors.ErrCodeBoardNotFound, forgeErr.Code)
	assert.Empty(t, client.added)
}

func TestLinkMalformedBoard(t *testing.T) {
	client := &fakeBoardClient{boards: []Board{
		{ID: "", Number: 0, Title: "Roadmap", OwnerLogin: "acme"},
	}}
	linker := NewLinker(client, "acme", "Roadmap", log.Default())

	err := linker.Link(context.Background(), testIssue)
	require.Error(t, err)

	var forgeErr *errors.ForgeError
	require.ErrorAs(t, err, &forgeErr)
	assert.Equal(t, errors.ErrCodeBoardMalformed, forgeErr.Code)
}

func TestLinkAddItemFailureIsFatal(t *testing.T) {
	client := &fakeBoardClient{
		boards: []Board{{ID: "PVT_y", Number: 2, Title: "Roadmap", OwnerLogin: "acme"}},
		addErr: errors.New(errors.ErrCodeBoardAddItem, "item-add failed"),
	}
	linker := NewLinker(client, "acme", "Roadmap", log.Default())

	err := linker.Link(context.Background(), testIssue)
	require.Error(t, err)

	var forgeErr *errors.ForgeError
	require.ErrorAs(t, err, &forgeErr)
	assert.Equal(t, errors.ErrCodeBoardAddItem, forgeErr.Code)
}
