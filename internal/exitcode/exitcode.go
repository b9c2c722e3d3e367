package exitcode

import (
	stderrors "errors"
	"os"

	"github.com/felixgeelhaar/planforge/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates the full plan walk completed (per-item warnings allowed)
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ConfigError indicates missing or invalid startup configuration
	ConfigError = 3

	// ExtractError indicates the plan could not be extracted from the model
	ExtractError = 4

	// BoardError indicates board resolution or item attachment failed
	BoardError = 5

	// TrackerError indicates a fatal tracker-side failure
	TrackerError = 6

	// Interrupted indicates the run was cancelled by a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var forgeErr *errors.ForgeError
	if stderrors.As(err, &forgeErr) {
		switch codeCategory(forgeErr.Code) {
		case "CONFIG":
			return ConfigError
		case "EXTRACT":
			return ExtractError
		case "BOARD":
			return BoardError
		case "TRACKER":
			return TrackerError
		case "IO":
			return ConfigError
		}
	}

	return GeneralError
}

func codeCategory(code errors.ErrorCode) string {
	s := string(code)
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			return s[:i]
		}
	}
	return s
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ConfigError:
		return "Configuration error"
	case ExtractError:
		return "Plan extraction failed"
	case BoardError:
		return "Board resolution or linking failed"
	case TrackerError:
		return "Tracker error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
