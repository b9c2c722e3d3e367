package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigMissing ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid ErrorCode = "CONFIG-002"
	ErrCodeConfigFile    ErrorCode = "CONFIG-003"

	// Plan extraction errors (EXTRACT-001 to EXTRACT-099)
	ErrCodeExtractTransport  ErrorCode = "EXTRACT-001"
	ErrCodeExtractAPI        ErrorCode = "EXTRACT-002"
	ErrCodeExtractUnparsable ErrorCode = "EXTRACT-003"
	ErrCodeExtractSchema     ErrorCode = "EXTRACT-004"

	// Tracker errors (TRACKER-001 to TRACKER-099)
	ErrCodeTrackerList    ErrorCode = "TRACKER-001"
	ErrCodeTrackerCreate  ErrorCode = "TRACKER-002"
	ErrCodeTrackerAuth    ErrorCode = "TRACKER-003"
	ErrCodeTrackerUnknown ErrorCode = "TRACKER-004"

	// Board errors (BOARD-001 to BOARD-099)
	ErrCodeBoardList      ErrorCode = "BOARD-001"
	ErrCodeBoardNotFound  ErrorCode = "BOARD-002"
	ErrCodeBoardMalformed ErrorCode = "BOARD-003"
	ErrCodeBoardAddItem   ErrorCode = "BOARD-004"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound   ErrorCode = "IO-001"
	ErrCodeFileReadFailed ErrorCode = "IO-002"
)

// ForgeError represents an enhanced error with code and suggestions
type ForgeError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *ForgeError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ForgeError) Unwrap() error {
	return e.Cause
}

// New creates a new ForgeError
func New(code ErrorCode, message string) *ForgeError {
	return &ForgeError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ForgeError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ForgeError {
	return &ForgeError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ForgeError) WithSuggestion(suggestion string) *ForgeError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// Common error constructors for frequently used errors

// NewConfigMissingError creates a missing configuration error
func NewConfigMissingError(names []string) *ForgeError {
	return New(ErrCodeConfigMissing, fmt.Sprintf("required configuration not set: %s", strings.Join(names, ", "))).
		WithSuggestion("Export the missing environment variables before running planforge").
		WithSuggestion("Or supply them through a planforge.yaml file with --config")
}

// NewRequirementsFileError creates an unreadable requirements file error
func NewRequirementsFileError(path string, cause error) *ForgeError {
	return Wrap(ErrCodeFileReadFailed, fmt.Sprintf("cannot read requirements file: %s", path), cause).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewExtractUnparsableError creates an unparseable model response error
func NewExtractUnparsableError(cause error) *ForgeError {
	return Wrap(ErrCodeExtractUnparsable, "model response is not a valid plan", cause).
		WithSuggestion("Re-run the tool; the generator occasionally returns malformed output").
		WithSuggestion("Inspect the raw response with --log-level debug")
}

// NewBoardNotFoundError creates a board resolution error
func NewBoardNotFoundError(owner, name string) *ForgeError {
	return New(ErrCodeBoardNotFound, fmt.Sprintf("board %q not found for owner %q", name, owner)).
		WithSuggestion("Check GITHUB_PROJECT_NAME matches the board title exactly").
		WithSuggestion(fmt.Sprintf("List boards with: gh project list --owner %s", owner))
}
