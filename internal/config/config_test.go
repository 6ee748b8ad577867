package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `connection:
  host: myhost
  port: 5433
  username: myuser
  database: mydb
  sslmode: require
  auth_method: aws-iam
  aws_region: us-east-1

ingest:
  target_table: yellow_trips
  chunksize: 50000
  format: parquet
  taxi_type: yellow

timeout: 10m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "myhost", cfg.Connection.Host)
	assert.Equal(t, 5433, cfg.Connection.Port)
	assert.Equal(t, "myuser", cfg.Connection.Username)
	assert.Equal(t, "mydb", cfg.Connection.Database)
	assert.Equal(t, "require", cfg.Connection.SSLMode)
	assert.Equal(t, "aws-iam", cfg.Connection.AuthMethod)
	assert.Equal(t, "us-east-1", cfg.Connection.AWSRegion)
	assert.Equal(t, "yellow_trips", cfg.Ingest.TargetTable)
	assert.Equal(t, 50000, cfg.Ingest.ChunkSize)
	assert.Equal(t, "parquet", cfg.Ingest.Format)
	assert.Equal(t, "yellow", cfg.Ingest.TaxiType)
	assert.Equal(t, "10m", cfg.Timeout)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	content := `ingest:
  target_table: green_trips
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "", cfg.Connection.Host)
	assert.Equal(t, 0, cfg.Connection.Port)
	assert.Equal(t, "green_trips", cfg.Ingest.TargetTable)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(""), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProjectConfig{}, *cfg)
}
