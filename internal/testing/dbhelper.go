// Package testing provides helpers shared by integration tests:
// a lazily started PostgreSQL container and config plumbing around it.
package testing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/tripload/internal/db"
	"github.com/vvka-141/tripload/internal/logging"
	"github.com/vvka-141/tripload/internal/services"
	"github.com/vvka-141/tripload/internal/testinfra"
	"github.com/vvka-141/tripload/pkg/tripload"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartPostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: TRIPLOAD_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("TRIPLOAD_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("TRIPLOAD_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the test connection string if available, otherwise skips the test.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// ConnConfigFor parses a connection string into the loader's connection config.
func ConnConfigFor(t *testing.T, connString string) tripload.ConnConfig {
	t.Helper()

	cfg, err := pgconn.ParseConfig(connString)
	if err != nil {
		t.Fatalf("parse test connection string: %v", err)
	}

	return tripload.ConnConfig{
		Host:     cfg.Host,
		Port:     int(cfg.Port),
		Database: cfg.Database,
		Username: cfg.User,
		Password: cfg.Password,
		SSLMode:  "disable",
	}
}

// UniqueTableName returns a table name that is unique across parallel test
// runs sharing one database.
func UniqueTableName(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s_%s", prefix, suffix[:12])
}

// NewTestIngester creates an IngestionService wired to the real connector
// factory and a silent logger.
func NewTestIngester(t *testing.T) *services.IngestionService {
	t.Helper()

	return services.NewIngestionService(db.NewConnector, logging.NewNullLogger())
}
