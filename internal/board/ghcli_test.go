package board

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/planforge/internal/errors"
	"github.com/felixgeelhaar/planforge/internal/log"
)

// stubRunner records invocations and plays back canned output
type stubRunner struct {
	output []byte
	err    error
	calls  [][]string
}

func (s *stubRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	if s.err != nil {
		return nil, s.err
	}
	return s.output, nil
}

func newStubClient(runner *stubRunner) *GHClient {
	return &GHClient{runner: runner, logger: log.Default()}
}

func TestListBoards(t *testing.T) {
	runner := &stubRunner{output: []byte(`{
		"projects": [
			{"id": "PVT_abc", "number": 2, "title": "Roadmap", "owner": {"login": "acme"}},
			{"id": "PVT_def", "number": 5, "title": "Bugs", "owner": {"login": "acme"}}
		]
	}`)}

	client := newStubClient(runner)
	boards, err := client.ListBoards(context.Background(), "acme")
	require.NoError(t, err)

	require.Len(t, boards, 2)
	assert.Equal(t, Board{ID: "PVT_abc", Number: 2, Title: "Roadmap", OwnerLogin: "acme"}, boards[0])

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"gh", "project", "list", "--owner", "acme", "--format", "json"}, runner.calls[0])
}

func TestListBoardsEmptyOutput(t *testing.T) {
	client := newStubClient(&stubRunner{output: []byte("  \n")})

	_, err := client.ListBoards(context.Background(), "acme")
	require.Error(t, err)

	var forgeErr *errors.ForgeError
	require.ErrorAs(t, err, &forgeErr)
	assert.Equal(t, errors.ErrCodeBoardList, forgeErr.Code)
}

func TestListBoardsMalformedJSON(t *testing.T) {
	client := newStubClient(&stubRunner{output: []byte(`not json`)})

	_, err := client.ListBoards(context.Background(), "acme")
	require.Error(t, err)

	var forgeErr *errors.ForgeError
	require.ErrorAs(t, err, &forgeErr)
	assert.Equal(t, errors.ErrCodeBoardMalformed, forgeErr.Code)
}

func TestListBoardsCommandFailure(t *testing.T) {
	client := newStubClient(&stubRunner{err: stderrors.New("gh: not logged in")})

	_, err := client.ListBoards(context.Background(), "acme")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not logged in"))
}

func TestAddItem(t *testing.T) {
	runner := &stubRunner{output: []byte(`{}`)}
	client := newStubClient(runner)

	err := client.AddItem(context.Background(), 2, "acme", "https://github.com/acme/acme-api/issues/42")
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"gh", "project", "item-add", "2",
		"--owner", "acme",
		"--url", "https://github.com/acme/acme-api/issues/42",
	}, runner.calls[0])
}

func TestAddItemFailure(t *testing.T) {
	client := newStubClient(&stubRunner{err: stderrors.New("could not resolve project")})

	err := client.AddItem(context.Background(), 2, "acme", "https://example.com/issue/1")
	require.Error(t, err)

	var forgeErr *errors.ForgeError
	require.ErrorAs(t, err, &forgeErr)
	assert.Equal(t, errors.ErrCodeBoardAddItem, forgeErr.Code)
}
