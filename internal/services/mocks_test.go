package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tripload/pkg/tripload"
)

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

// mockConn records DDL and COPY traffic for orchestration assertions.
type mockConn struct {
	execSQL    []string
	copyTables []string
	copyRows   [][][]any
	execErr    error
	copyErr    error
	closed     bool
}

func (m *mockConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	m.execSQL = append(m.execSQL, sql)
	return pgconn.NewCommandTag(""), m.execErr
}

func (m *mockConn) QueryRow(_ context.Context, _ string, _ ...any) tripload.Row {
	return &mockRow{}
}

func (m *mockConn) CopyFrom(_ context.Context, table pgx.Identifier, _ []string, rows pgx.CopyFromSource) (int64, error) {
	if m.copyErr != nil {
		return 0, m.copyErr
	}
	m.copyTables = append(m.copyTables, table.Sanitize())

	var batch [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return int64(len(batch)), err
		}
		batch = append(batch, vals)
	}
	m.copyRows = append(m.copyRows, batch)
	return int64(len(batch)), nil
}

func (m *mockConn) Close() {
	m.closed = true
}

func (m *mockConn) execContaining(substr string) int {
	n := 0
	for _, sql := range m.execSQL {
		if strings.Contains(sql, substr) {
			n++
		}
	}
	return n
}

type mockRow struct{}

func (m *mockRow) Scan(_ ...any) error { return nil }

type mockLogger struct {
	infos []string
}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(format string, args ...interface{}) {
	m.infos = append(m.infos, fmt.Sprintf(format, args...))
}
func (m *mockLogger) Error(_ string, _ ...interface{}) {}
