package reader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// timestampLayouts are tried in order when parsing datetime cells.
// NYC TLC exports use the space-separated form.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// readCSVChunks decodes delimited text incrementally, one record at a time.
// Column types come from opts.Hints where given; un-hinted columns are
// inferred from the first chunk's values and stay fixed for the rest of
// the stream.
func readCSVChunks(ctx context.Context, r io.Reader, opts Options, fn ChunkFunc) error {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// No header at all: zero-batch sequence.
			return nil
		}
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make([]string, len(header))
	copy(columns, header)

	var (
		schema tripload.Schema
		raw    [][]string
	)

	flush := func() error {
		if schema == nil {
			schema = buildSchema(columns, raw, opts.Hints)
		}
		batch, err := coerceBatch(schema, raw)
		if err != nil {
			return err
		}
		raw = raw[:0]
		return fn(batch)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to decode CSV record: %w", err)
		}
		if len(record) != len(columns) {
			return fmt.Errorf("CSV record has %d fields, header has %d", len(record), len(columns))
		}

		row := make([]string, len(record))
		copy(row, record)
		raw = append(raw, row)

		if len(raw) >= opts.ChunkSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if len(raw) > 0 {
		return flush()
	}
	return nil
}

// buildSchema fixes a column type for every header column: the hint where
// one exists, otherwise the type inferred from the first chunk's values.
func buildSchema(columns []string, rows [][]string, hints *tripload.TypeHints) tripload.Schema {
	schema := make(tripload.Schema, len(columns))
	for i, name := range columns {
		if t, ok := hints.TypeOf(name); ok {
			schema[i] = tripload.Column{Name: name, Type: t}
			continue
		}
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			values = append(values, row[i])
		}
		schema[i] = tripload.Column{Name: name, Type: inferColumnType(values)}
	}
	return schema
}

// coerceBatch converts raw string records into typed rows per the schema.
func coerceBatch(schema tripload.Schema, rows [][]string) (*tripload.Batch, error) {
	typed := make([][]any, len(rows))
	for i, row := range rows {
		out := make([]any, len(row))
		for j, cell := range row {
			v, err := coerceValue(cell, schema[j].Type)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", schema[j].Name, err)
			}
			out[j] = v
		}
		typed[i] = out
	}
	return &tripload.Batch{Schema: schema, Rows: typed}, nil
}

// coerceValue parses a single CSV cell into its typed representation.
// Empty cells become NULL regardless of type.
func coerceValue(cell string, t tripload.ColumnType) (any, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil, nil
	}

	switch t {
	case tripload.TypeInteger:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			// Integer columns in TLC exports occasionally carry a
			// float rendering like "1.0".
			f, ferr := strconv.ParseFloat(trimmed, 64)
			if ferr != nil || f != float64(int64(f)) {
				return nil, fmt.Errorf("cannot parse %q as integer", cell)
			}
			return int64(f), nil
		}
		return n, nil

	case tripload.TypeFloat:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float", cell)
		}
		return f, nil

	case tripload.TypeTimestamp:
		ts, err := parseTimestamp(trimmed)
		if err != nil {
			return nil, err
		}
		return ts, nil

	case tripload.TypeBool:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as bool", cell)
		}
		return b, nil

	default:
		return cell, nil
	}
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as timestamp", s)
}
