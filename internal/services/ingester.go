// Package services orchestrates ingestion runs: resolve the source
// format, stream the source into batches, and load them into PostgreSQL.
package services

import (
	"context"
	"fmt"
	"io"

	"github.com/vvka-141/tripload/internal/db"
	"github.com/vvka-141/tripload/internal/format"
	"github.com/vvka-141/tripload/internal/load"
	"github.com/vvka-141/tripload/internal/reader"
	"github.com/vvka-141/tripload/internal/source"
	"github.com/vvka-141/tripload/pkg/tripload"
)

// sourceOpenFunc opens a locator as a decompressed byte stream.
type sourceOpenFunc func(ctx context.Context, locator string) (io.ReadCloser, error)

// dbConnFunc establishes the loader's database connection.
type dbConnFunc func(ctx context.Context, connConfig *tripload.ConnConfig) (tripload.DBConn, func(), error)

// IngestionService drives a single ingestion run end to end.
//
// Thread-Safety: NOT safe for concurrent Ingest() calls on the same
// instance. Create separate instances for concurrent runs.
type IngestionService struct {
	connectorFactory tripload.ConnectorFactory
	logger           tripload.Logger
	openSource       sourceOpenFunc
	connect          dbConnFunc
}

// NewIngestionService creates an IngestionService with all dependencies injected.
//
// Panics on nil dependencies: those are programmer errors that should fail
// loudly at startup, not surface as nil dereferences mid-run. Runtime
// conditions (bad config, unreachable source, connection failures) are
// returned as errors.
func NewIngestionService(connectorFactory tripload.ConnectorFactory, logger tripload.Logger) *IngestionService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	svc := &IngestionService{
		connectorFactory: connectorFactory,
		logger:           logger,
		openSource:       source.Open,
	}
	svc.connect = svc.defaultConnect
	return svc
}

// Ingest runs one load: the target table is dropped and recreated from the
// first batch's schema, then every batch is appended in source order.
// Returns the total number of records loaded.
//
// The run is all-or-nothing only per batch: a mid-run failure leaves the
// batches already written in place. Re-running the same load restores a
// consistent table because the first batch drops it again.
func (s *IngestionService) Ingest(ctx context.Context, cfg *tripload.IngestConfig) (int64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	f, err := format.Resolve(cfg.URL, cfg.Format)
	if err != nil {
		return 0, err
	}
	s.logger.Verbose("Resolved source format: %s", f)

	src, err := s.openSource(ctx, cfg.URL)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	conn, cleanup, err := s.connect(ctx, &cfg.Connection)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	writer := load.NewWriter(conn, s.logger, cfg.TargetTable)

	opts := reader.Options{ChunkSize: cfg.ChunkSize}
	if f == tripload.FormatCSV {
		opts.Hints = cfg.Hints
	}

	err = reader.ReadChunks(ctx, src, f, opts, func(batch *tripload.Batch) error {
		return writer.Write(ctx, batch)
	})
	if err != nil {
		return writer.Total(), err
	}

	total := writer.Finish()
	if !writer.TableCreated() {
		s.logger.Info("Source is empty; table %s was not created", cfg.TargetTable)
		return 0, nil
	}

	s.logger.Info("Finished loading %d rows into %s", total, cfg.TargetTable)
	return total, nil
}

func (s *IngestionService) defaultConnect(ctx context.Context, connConfig *tripload.ConnConfig) (tripload.DBConn, func(), error) {
	connector, err := s.connectorFactory(connConfig, s.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	s.logger.Verbose("Connecting to %s:%d/%s as %s (%s auth)",
		connConfig.Host, connConfig.Port, connConfig.Database,
		connConfig.Username, connConfig.AuthMethod)

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		pool.Close()
		// The Google Cloud SQL connector holds a dialer that outlives the pool.
		if closer, ok := connector.(io.Closer); ok {
			closer.Close()
		}
	}
	return db.NewPoolAdapter(pool), cleanup, nil
}
