package tripload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, unresolved format)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitWriteFailed     = 13 // Table create or append failed
)

const (
	// DefaultChunkSize is the number of records per batch when --chunksize
	// is not given.
	DefaultChunkSize = 100000

	// DefaultTimeout bounds a full ingestion run. Bulk loads of large files
	// are slow, so this is hang protection rather than a normal deadline.
	DefaultTimeout = 30 * time.Minute

	// Defaults for the granular connection flags.
	DefaultPGUser     = "root"
	DefaultPGPassword = "root"
	DefaultPGHost     = "localhost"
	DefaultPGPort     = 5432
	DefaultPGDatabase = "ny_taxi"
)
