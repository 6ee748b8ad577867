// Package testinfra starts throwaway PostgreSQL containers for
// integration tests.
package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	PostgresImage    = "postgres:17"
	PostgresUser     = "root"
	PostgresPassword = "root"
	PostgresDB       = "ny_taxi"
)

type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

func StartPostgres(ctx context.Context) (pc *PostgresContainer, err error) {
	// testcontainers-go panics (rather than returning an error) when no
	// Docker host can be found; surface that as an error so callers can
	// skip instead of crashing the test binary.
	defer func() {
		if r := recover(); r != nil {
			pc = nil
			err = fmt.Errorf("start postgres: %v", r)
		}
	}()

	ctr, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(PostgresDB),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}
