package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tripload/internal/logging"
	"github.com/vvka-141/tripload/pkg/tripload"
)

// TokenBasedConnector implements tripload.Connector for cloud providers
// that authenticate via short-lived tokens (AWS RDS IAM, Azure Entra ID).
// The token is acquired from a TokenProvider and used as the PostgreSQL
// password. The pool is opened once per run, so a single token suffices
// as long as the load finishes inside its validity window.
type TokenBasedConnector struct {
	config        *tripload.ConnConfig
	tokenProvider TokenProvider
	providerName  string
	logger        tripload.Logger
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider for
// authentication. providerName is used in warnings (e.g., "AWS IAM", "Azure").
// A nil logger silences diagnostics.
func NewTokenBasedConnector(config *tripload.ConnConfig, tokenProvider TokenProvider, providerName string, logger tripload.Logger) *TokenBasedConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
		logger:        logger,
	}
}

// Connect acquires a token and establishes a connection pool with it.
func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s token: %w: %w", c.providerName, tripload.ErrConnectionFailed, err)
	}

	if time.Until(expiresOn) < 5*time.Minute {
		c.logger.Info("Warning: %s token expires in %v", c.providerName, time.Until(expiresOn).Round(time.Second))
	}

	configWithToken := *c.config
	configWithToken.Password = token

	connStr := BuildConnString(&configWithToken)

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
