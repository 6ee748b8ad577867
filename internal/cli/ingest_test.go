package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/tripload/internal/config"
	"github.com/vvka-141/tripload/pkg/tripload"
)

// newTestCmd provides the flag metadata buildIngestConfig consults
// via Flags().Changed.
func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().Int("chunksize", tripload.DefaultChunkSize, "")
	cmd.Flags().Duration("timeout", tripload.DefaultTimeout, "")
	return cmd
}

func baseFlags() *ingestFlagValues {
	return &ingestFlagValues{
		url:         "trips.csv",
		targetTable: "yellow_trips",
		chunkSize:   tripload.DefaultChunkSize,
		timeout:     tripload.DefaultTimeout,
	}
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("PGPASSWORD", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AZURE_TENANT_ID", "")
	t.Setenv("AZURE_CLIENT_ID", "")
	t.Setenv("AZURE_CLIENT_SECRET", "")
}

func TestBuildIngestConfig_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := buildIngestConfig(newTestCmd(), baseFlags(), false)
	require.NoError(t, err)

	assert.Equal(t, "trips.csv", cfg.URL)
	assert.Equal(t, "yellow_trips", cfg.TargetTable)
	assert.Equal(t, tripload.DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, tripload.FormatUnknown, cfg.Format)
	assert.Nil(t, cfg.Hints)

	assert.Equal(t, tripload.DefaultPGHost, cfg.Connection.Host)
	assert.Equal(t, tripload.DefaultPGPort, cfg.Connection.Port)
	assert.Equal(t, tripload.DefaultPGDatabase, cfg.Connection.Database)
	assert.Equal(t, tripload.DefaultPGUser, cfg.Connection.Username)
	assert.Equal(t, tripload.DefaultPGPassword, cfg.Connection.Password)
	assert.Equal(t, tripload.AuthMethodStandard, cfg.Connection.AuthMethod)
	assert.Equal(t, tripload.DefaultTimeout, cfg.Timeout)
}

func TestBuildIngestConfig_FlagsWin(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PGPASSWORD", "env-secret")

	flags := baseFlags()
	flags.pgHost = "db.example.com"
	flags.pgPort = 5433
	flags.pgUser = "loader"
	flags.pgPass = "flag-secret"
	flags.pgDatabase = "trips"
	flags.sslMode = "require"

	cfg, err := buildIngestConfig(newTestCmd(), flags, false)
	require.NoError(t, err)

	assert.Equal(t, "db.example.com", cfg.Connection.Host)
	assert.Equal(t, 5433, cfg.Connection.Port)
	assert.Equal(t, "loader", cfg.Connection.Username)
	assert.Equal(t, "flag-secret", cfg.Connection.Password, "--pg-pass beats $PGPASSWORD")
	assert.Equal(t, "trips", cfg.Connection.Database)
	assert.Equal(t, "require", cfg.Connection.SSLMode)
}

func TestBuildIngestConfig_PromptOverridesFlagAndEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PGPASSWORD", "env-secret")

	orig := promptPassword
	promptPassword = func() (string, error) { return "prompted-secret", nil }
	t.Cleanup(func() { promptPassword = orig })

	flags := baseFlags()
	flags.pgPass = "flag-secret"
	flags.promptPass = true

	cfg, err := buildIngestConfig(newTestCmd(), flags, false)
	require.NoError(t, err)
	assert.Equal(t, "prompted-secret", cfg.Connection.Password, "-W beats --pg-pass and $PGPASSWORD")
}

func TestBuildIngestConfig_PGPasswordEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PGPASSWORD", "env-secret")

	cfg, err := buildIngestConfig(newTestCmd(), baseFlags(), false)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Connection.Password)
}

func TestBuildIngestConfig_YamlFallback(t *testing.T) {
	isolateEnv(t)

	content := `connection:
  host: yaml-host
  port: 6543
  username: yaml-user
  database: yaml-db

ingest:
  chunksize: 5000
  taxi_type: green

timeout: 2m
`
	require.NoError(t, os.WriteFile(filepath.Join(".", config.ConfigFileName), []byte(content), 0644))

	cfg, err := buildIngestConfig(newTestCmd(), baseFlags(), false)
	require.NoError(t, err)

	assert.Equal(t, "yaml-host", cfg.Connection.Host)
	assert.Equal(t, 6543, cfg.Connection.Port)
	assert.Equal(t, "yaml-user", cfg.Connection.Username)
	assert.Equal(t, "yaml-db", cfg.Connection.Database)
	assert.Equal(t, 5000, cfg.ChunkSize)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Hints, "taxi_type from file selects hints")
	_, ok := cfg.Hints.TypeOf("lpep_pickup_datetime")
	assert.True(t, ok)
}

func TestBuildIngestConfig_ExplicitChunksizeBeatsYaml(t *testing.T) {
	isolateEnv(t)

	content := "ingest:\n  chunksize: 5000\n"
	require.NoError(t, os.WriteFile(filepath.Join(".", config.ConfigFileName), []byte(content), 0644))

	cmd := newTestCmd()
	require.NoError(t, cmd.Flags().Set("chunksize", "42"))

	flags := baseFlags()
	flags.chunkSize = 42

	cfg, err := buildIngestConfig(cmd, flags, false)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.ChunkSize)
}

func TestBuildIngestConfig_TaxiTypeHints(t *testing.T) {
	isolateEnv(t)

	flags := baseFlags()
	flags.taxiType = "yellow"

	cfg, err := buildIngestConfig(newTestCmd(), flags, false)
	require.NoError(t, err)
	require.NotNil(t, cfg.Hints)

	typ, ok := cfg.Hints.TypeOf("tpep_pickup_datetime")
	require.True(t, ok)
	assert.Equal(t, tripload.TypeTimestamp, typ)
}

func TestBuildIngestConfig_InvalidInputs(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name   string
		mutate func(*ingestFlagValues)
	}{
		{"missing url", func(f *ingestFlagValues) { f.url = "" }},
		{"missing target table", func(f *ingestFlagValues) { f.targetTable = "" }},
		{"bad format", func(f *ingestFlagValues) { f.format = "xml" }},
		{"bad taxi type", func(f *ingestFlagValues) { f.taxiType = "purple" }},
		{"bad auth method", func(f *ingestFlagValues) { f.auth = "kerberos" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := baseFlags()
			tt.mutate(flags)

			_, err := buildIngestConfig(newTestCmd(), flags, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, tripload.ErrInvalidConfig)
		})
	}
}

func TestBuildIngestConfig_CloudAuthFromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("AWS_REGION", "eu-west-1")

	flags := baseFlags()
	flags.auth = "aws-iam"

	cfg, err := buildIngestConfig(newTestCmd(), flags, false)
	require.NoError(t, err)
	assert.Equal(t, tripload.AuthMethodAWSIAM, cfg.Connection.AuthMethod)
	assert.Equal(t, "eu-west-1", cfg.Connection.AWSRegion)
	assert.Empty(t, cfg.Connection.Password, "no password default for token auth")
}
