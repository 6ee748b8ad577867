// Package load appends decoded batches to the destination table.
//
// The writer is a three-state machine: awaiting the first batch, loading,
// done. The first batch fixes the table schema; the table is dropped and
// recreated on every run ("replace" semantics), which makes re-runs of a
// bulk load idempotent. If the source yields no batches at all, no DDL is
// issued and the destination table is left untouched.
package load

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/tripload/pkg/tripload"
)

type state int

const (
	awaitingFirstBatch state = iota
	loading
	done
)

// Writer consumes a batch sequence and appends it to one table.
// Not safe for concurrent use; the pipeline is strictly sequential.
type Writer struct {
	conn   tripload.DBConn
	logger tripload.Logger
	table  string

	state   state
	schema  tripload.Schema
	total   int64
	created bool
}

// NewWriter creates a Writer targeting the given table.
func NewWriter(conn tripload.DBConn, logger tripload.Logger, table string) *Writer {
	return &Writer{
		conn:   conn,
		logger: logger,
		table:  table,
	}
}

// Write appends one batch. On the first batch it first replaces the
// destination table using the batch's schema. Later batches must match
// that schema; drift is surfaced as an error, not reconciled.
func (w *Writer) Write(ctx context.Context, batch *tripload.Batch) error {
	if w.state == done {
		return fmt.Errorf("writer for table %q already finished", w.table)
	}

	if w.state == awaitingFirstBatch {
		if err := w.createTable(ctx, batch.Schema); err != nil {
			return err
		}
		w.schema = batch.Schema
		w.state = loading
		w.created = true
		w.logger.Info("Table %s created", w.table)
	}

	if !batch.Schema.Equal(w.schema) {
		return fmt.Errorf("batch columns %v do not match table columns %v: %w",
			batch.Schema.Names(), w.schema.Names(), tripload.ErrSchemaMismatch)
	}

	n, err := w.conn.CopyFrom(ctx, pgx.Identifier{w.table}, w.schema.Names(),
		pgx.CopyFromRows(batch.Rows))
	if err != nil {
		return fmt.Errorf("failed to append %d rows to %q: %w: %w",
			batch.NumRows(), w.table, tripload.ErrWriteFailed, err)
	}

	w.total += n
	w.logger.Info("Inserted: %d", n)
	return nil
}

// Finish marks the load complete and returns the total records written.
// A finished writer rejects further batches.
func (w *Writer) Finish() int64 {
	w.state = done
	return w.total
}

// Total returns the records written so far.
func (w *Writer) Total() int64 {
	return w.total
}

// TableCreated reports whether the destination table was replaced,
// i.e. at least one batch arrived. Finishing an empty writer does not
// flip it: a load with no batches leaves the table untouched.
func (w *Writer) TableCreated() bool {
	return w.created
}

func (w *Writer) createTable(ctx context.Context, schema tripload.Schema) error {
	if len(schema) == 0 {
		return fmt.Errorf("first batch has no columns: %w", tripload.ErrWriteFailed)
	}

	if _, err := w.conn.Exec(ctx, dropTableSQL(w.table)); err != nil {
		return fmt.Errorf("failed to drop table %q: %w: %w", w.table, tripload.ErrWriteFailed, err)
	}
	if _, err := w.conn.Exec(ctx, createTableSQL(w.table, schema)); err != nil {
		return fmt.Errorf("failed to create table %q: %w: %w", w.table, tripload.ErrWriteFailed, err)
	}
	return nil
}
