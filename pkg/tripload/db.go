package tripload

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConn abstracts the database operations the load writer needs:
// DDL execution and bulk row append. It decouples the writer from
// pgx-specific pool types so tests can substitute mocks.
//
// Thread-Safety: implementations backed by pgxpool.Pool are safe for
// concurrent use; the loader itself is strictly sequential.
type DBConn interface {
	// Exec executes a statement without returning any rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// QueryRow executes a query that is expected to return at most one row.
	// Errors are deferred until Row's Scan method is called.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// CopyFrom bulk-appends rows to a table using the PostgreSQL COPY
	// protocol. Returns the number of rows copied.
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, rows pgx.CopyFromSource) (int64, error)

	// Close releases the underlying connection resources.
	Close()
}

// Row represents a single row returned by QueryRow.
// This interface decouples from pgx.Row.
type Row interface {
	// Scan reads the values from the row into dest values.
	Scan(dest ...any) error
}

// Connector abstracts connection establishment so that standard
// password auth and cloud token auth share one call site.
type Connector interface {
	// Connect establishes a connection pool, verifying it with a ping.
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}

// ConnectorFactory creates the appropriate Connector for a ConnConfig.
// Injected into the ingestion service for testability. The logger carries
// connector diagnostics such as token-expiry warnings.
type ConnectorFactory func(config *ConnConfig, logger Logger) (Connector, error)
