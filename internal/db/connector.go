package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns stays small: the load is strictly sequential, the
	// pool exists for lifecycle management rather than parallelism.
	DefaultMaxConns = 2

	// DefaultMinConns maintains at least one connection in the pool.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime keeps the connection alive between slow
	// chunk decodes to avoid reconnection overhead mid-load.
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		fmt.Println(notice.Message)
	}
}

// StandardConnector implements tripload.Connector for username/password
// authentication. A failed connect is fatal; the caller re-invokes the
// whole load rather than retrying.
type StandardConnector struct {
	config *tripload.ConnConfig
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
func NewStandardConnector(config *tripload.ConnConfig) *StandardConnector {
	return &StandardConnector{config: config}
}

// Connect establishes a connection pool, verifying it with a ping.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	connStr := BuildConnString(c.config)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	return pool, nil
}

// NewConnector is a factory function that creates the appropriate Connector
// based on the ConnConfig's AuthMethod.
func NewConnector(config *tripload.ConnConfig, logger tripload.Logger) (tripload.Connector, error) {
	switch config.AuthMethod {
	case tripload.AuthMethodStandard:
		return NewStandardConnector(config), nil
	case tripload.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case tripload.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	case tripload.AuthMethodGoogleIAM:
		return newGoogleConnector(config)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, tripload.ErrInvalidConfig)
	}
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`%w: connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port (--pg-host, --pg-port)
  - Firewall blocking the connection

Original error: %v`, tripload.ErrConnectionFailed, addr, host, port, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`%w: cannot resolve host %q

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

Original error: %v`, tripload.ErrConnectionFailed, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`%w: password authentication failed for database %q

Possible causes:
  - Wrong password (check --pg-pass or $PGPASSWORD)
  - Wrong username (--pg-user)
  - User does not have access to the database

Original error: %v`, tripload.ErrConnectionFailed, database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`%w: database %q does not exist

To create it:
  createdb %s

Original error: %v`, tripload.ErrConnectionFailed, database, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`%w: connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %v`, tripload.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`%w: SSL/TLS connection error

Possible causes:
  - Server requires SSL but --sslmode is wrong
  - Certificate verification failed (try --sslmode=require)

Original error: %v`, tripload.ErrConnectionFailed, err)

	default:
		return fmt.Errorf("%w: %v", tripload.ErrConnectionFailed, err)
	}
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *tripload.ConnConfig, logger tripload.Logger) (tripload.Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM", logger), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID token provider.
// If explicit credentials (tenant, client, secret) are provided, uses Service Principal auth.
// Otherwise, falls back to the DefaultAzureCredential chain.
func newAzureConnector(config *tripload.ConnConfig, logger tripload.Logger) (tripload.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID,
			config.AzureClientID,
			config.AzureClientSecret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure", logger), nil
}

// newGoogleConnector creates a GoogleCloudSQLConnector for Cloud SQL IAM authentication.
func newGoogleConnector(config *tripload.ConnConfig) (tripload.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", tripload.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --pg-user: %w", tripload.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance), nil
}
