package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeConfigMissing, "something is missing")

	assert.Equal(t, ErrCodeConfigMissing, err.Code)
	assert.Contains(t, err.Error(), "[CONFIG-001]")
	assert.Contains(t, err.Error(), "something is missing")
	assert.Nil(t, err.Cause)
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeTrackerCreate, "create milestone failed", cause)

	assert.Contains(t, err.Error(), "[TRACKER-002]")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, stderrors.Is(err, cause))
}

func TestWithSuggestion(t *testing.T) {
	err := New(ErrCodeBoardNotFound, "board missing").
		WithSuggestion("check the board name").
		WithSuggestion("check the owner")

	require.Len(t, err.Suggestions, 2)
	assert.Contains(t, err.Error(), "Suggestions:")
	assert.Contains(t, err.Error(), "check the board name")
}

func TestErrorsAs(t *testing.T) {
	var target *ForgeError
	err := func() error {
		return New(ErrCodeExtractSchema, "schema violation")
	}()

	require.True(t, stderrors.As(err, &target))
	assert.Equal(t, ErrCodeExtractSchema, target.Code)
}

func TestCommonConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ForgeError
		wantCode ErrorCode
	}{
		{
			name:     "config missing",
			err:      NewConfigMissingError([]string{"GITHUB_TOKEN", "GEMINI_API_KEY"}),
			wantCode: ErrCodeConfigMissing,
		},
		{
			name:     "requirements file",
			err:      NewRequirementsFileError("docs/requirements.md", stderrors.New("no such file")),
			wantCode: ErrCodeFileReadFailed,
		},
		{
			name:     "unparsable response",
			err:      NewExtractUnparsableError(stderrors.New("unexpected end of JSON input")),
			wantCode: ErrCodeExtractUnparsable,
		},
		{
			name:     "board not found",
			err:      NewBoardNotFoundError("acme", "Roadmap"),
			wantCode: ErrCodeBoardNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.NotEmpty(t, tt.err.Suggestions)
		})
	}
}
