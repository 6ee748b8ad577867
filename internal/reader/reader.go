// Package reader decodes trip data sources into bounded-size batches.
//
// Batches are delivered through a callback, one at a time, so memory use
// stays bounded by the chunk size for incrementally decodable formats.
// The sequence is single-pass: reopening the source re-triggers the full
// read cost.
package reader

import (
	"context"
	"fmt"
	"io"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// ChunkFunc receives one decoded batch. Returning an error aborts the read.
type ChunkFunc func(batch *tripload.Batch) error

// Options control how a source is decoded into batches.
type Options struct {
	// ChunkSize is the maximum number of records per batch.
	ChunkSize int

	// Hints optionally fixes column types for CSV input.
	// Ignored for parquet, which carries its own schema.
	Hints *tripload.TypeHints
}

// ReadChunks decodes the source into batches of at most opts.ChunkSize
// records and invokes fn once per batch, in order. An empty source yields
// zero invocations and no error.
func ReadChunks(ctx context.Context, r io.Reader, f tripload.Format, opts Options, fn ChunkFunc) error {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = tripload.DefaultChunkSize
	}

	switch f {
	case tripload.FormatCSV:
		return readCSVChunks(ctx, r, opts, fn)
	case tripload.FormatParquet:
		return readParquetChunks(ctx, r, opts.ChunkSize, fn)
	default:
		return fmt.Errorf("%w: %v", tripload.ErrUnsupportedFormat, f)
	}
}
