package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// PoolAdapter adapts *pgxpool.Pool to implement the tripload.DBConn interface.
// This decouples the internal implementation from the public API, preventing
// direct exposure of pgx-specific pool types.
//
// Thread-Safety: Safe for concurrent use (pgxpool.Pool is thread-safe).
type PoolAdapter struct {
	pool *pgxpool.Pool
}

// NewPoolAdapter creates a new PoolAdapter wrapping the given pool.
func NewPoolAdapter(pool *pgxpool.Pool) tripload.DBConn {
	return &PoolAdapter{pool: pool}
}

// Exec executes a query without returning any rows.
func (p *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

// QueryRow executes a query that is expected to return at most one row.
func (p *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) tripload.Row {
	return &rowAdapter{row: p.pool.QueryRow(ctx, sql, args...)}
}

// CopyFrom bulk-appends rows using the PostgreSQL COPY protocol.
func (p *PoolAdapter) CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, rows pgx.CopyFromSource) (int64, error) {
	return p.pool.CopyFrom(ctx, table, columns, rows)
}

// Close releases all pool resources.
func (p *PoolAdapter) Close() {
	p.pool.Close()
}

// rowAdapter adapts pgx.Row to implement tripload.Row.
type rowAdapter struct {
	row interface{ Scan(...any) error }
}

// Scan reads the values from the row into dest values.
func (r *rowAdapter) Scan(dest ...any) error {
	return r.row.Scan(dest...)
}

// Verify PoolAdapter implements DBConn at compile time
var _ tripload.DBConn = (*PoolAdapter)(nil)
