package tripload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownFormat indicates the source format could not be resolved
	// from the locator and no explicit override was given.
	ErrUnknownFormat = errors.New("cannot detect format from URL")

	// ErrUnsupportedFormat indicates a format value outside the known set
	// reached the chunk reader.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrConnectionFailed indicates the database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrWriteFailed indicates a table create or append operation failed.
	ErrWriteFailed = errors.New("write failed")

	// ErrSchemaMismatch indicates a batch's schema differs from the schema
	// the destination table was created with.
	ErrSchemaMismatch = errors.New("schema mismatch between batches")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUnknownFormat):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrWriteFailed), errors.Is(err, ErrSchemaMismatch):
		return ExitWriteFailed
	case errors.Is(err, ErrUnsupportedFormat):
		return ExitConfigError
	}

	// Check for common connection error patterns
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	// cobra flag/argument errors carry no sentinel
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "invalid argument") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "accepts ") {
		return ExitUsageError
	}

	return ExitGeneralError
}
