// Package db establishes PostgreSQL connections for tripload.
//
// Connections use pgxpool for the process-lifetime pool the loader shares.
// Besides standard password authentication, managed-PostgreSQL IAM methods
// are supported: AWS RDS IAM tokens, Azure Entra ID tokens, and the Google
// Cloud SQL connector. Connection failures are fatal to the run; there is
// no retry loop.
package db

import (
	"fmt"
	"net/url"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// BuildConnString converts a ConnConfig to a PostgreSQL URI for pgx.
func BuildConnString(config *tripload.ConnConfig) string {
	u := &url.URL{
		Scheme: "postgresql",
		Host:   fmt.Sprintf("%s:%d", config.Host, config.Port),
		Path:   "/" + config.Database,
	}

	if config.Username != "" {
		if config.Password != "" {
			u.User = url.UserPassword(config.Username, config.Password)
		} else {
			u.User = url.User(config.Username)
		}
	}

	query := url.Values{}
	if config.SSLMode != "" {
		query.Set("sslmode", config.SSLMode)
	}
	u.RawQuery = query.Encode()

	return u.String()
}
