package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/tripload/internal/config"
	"github.com/vvka-141/tripload/internal/db"
	"github.com/vvka-141/tripload/internal/logging"
	"github.com/vvka-141/tripload/internal/services"
	"github.com/vvka-141/tripload/internal/taxi"
	"github.com/vvka-141/tripload/pkg/tripload"
)

type ingestFlagValues struct {
	url         string
	targetTable string
	chunkSize   int
	format      string
	taxiType    string

	pgUser     string
	pgPass     string
	pgHost     string
	pgPort     int
	pgDatabase string
	sslMode    string
	promptPass bool

	auth           string
	awsRegion      string
	azureTenantID  string
	azureClientID  string
	googleInstance string

	timeout time.Duration
}

var ingestFlags ingestFlagValues

func init() {
	f := rootCmd.Flags()

	f.StringVar(&ingestFlags.url, "url", "",
		"Source locator: http(s) URL or local file path (required)")
	f.StringVar(&ingestFlags.targetTable, "target-table", "",
		"Destination table name (required). Dropped and recreated on every run.")
	f.IntVar(&ingestFlags.chunkSize, "chunksize", tripload.DefaultChunkSize,
		"Records per chunk; bounds memory use and COPY batch size")
	f.StringVar(&ingestFlags.format, "format", "",
		"Source format override: csv|parquet\n"+
			"(default: detected from the URL suffix)")
	f.StringVar(&ingestFlags.taxiType, "taxi-type", "",
		"Apply well-known column types for a trip dataset: yellow|green\n"+
			"Only affects CSV input; parquet carries its own schema")

	f.StringVar(&ingestFlags.pgUser, "pg-user", "",
		fmt.Sprintf("PostgreSQL user (default: %s)", tripload.DefaultPGUser))
	f.StringVar(&ingestFlags.pgPass, "pg-pass", "",
		"PostgreSQL password\n"+
			"Prefer $PGPASSWORD or -W; flags are visible in shell history")
	f.StringVar(&ingestFlags.pgHost, "pg-host", "",
		fmt.Sprintf("PostgreSQL server host (default: %s)", tripload.DefaultPGHost))
	f.IntVar(&ingestFlags.pgPort, "pg-port", 0,
		fmt.Sprintf("PostgreSQL server port (default: %d)", tripload.DefaultPGPort))
	f.StringVar(&ingestFlags.pgDatabase, "pg-db", "",
		fmt.Sprintf("Target database name (default: %s)", tripload.DefaultPGDatabase))
	f.StringVar(&ingestFlags.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full")
	f.BoolVarP(&ingestFlags.promptPass, "password-prompt", "W", false,
		"Prompt for the password before connecting")

	f.StringVar(&ingestFlags.auth, "auth", "",
		"Authentication method: standard|aws-iam|azure|google-iam\n"+
			"(default: standard)")
	f.StringVar(&ingestFlags.awsRegion, "aws-region", "",
		"AWS region for RDS IAM token generation (overrides $AWS_REGION)")
	f.StringVar(&ingestFlags.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	f.StringVar(&ingestFlags.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")
	f.StringVar(&ingestFlags.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")

	f.DurationVar(&ingestFlags.timeout, "timeout", tripload.DefaultTimeout,
		"Hang protection for the whole run; large loads are expected to be slow\n"+
			"Examples: 30s, 5m, 1h30m")
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// buildIngestConfig resolves flags, environment, and tripload.yaml into an
// IngestConfig. Precedence: flag > environment > tripload.yaml > default.
// Extracted from runIngest for testability.
func buildIngestConfig(cmd *cobra.Command, flags *ingestFlagValues, verbose bool) (*tripload.IngestConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(".")
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	var fileConn config.ConnectionConfig
	var fileIngest config.IngestConfig
	if projectCfg != nil {
		fileConn = projectCfg.Connection
		fileIngest = projectCfg.Ingest
	}

	format, err := tripload.ParseFormat(firstNonEmpty(flags.format, fileIngest.Format))
	if err != nil {
		return nil, err
	}

	var hints *tripload.TypeHints
	if taxiType := firstNonEmpty(flags.taxiType, fileIngest.TaxiType); taxiType != "" {
		hints, err = taxi.HintsFor(taxiType)
		if err != nil {
			return nil, err
		}
	}

	authMethod, err := tripload.ParseAuthMethod(firstNonEmpty(flags.auth, fileConn.AuthMethod))
	if err != nil {
		return nil, err
	}

	password := flags.pgPass
	if password == "" {
		password = os.Getenv("PGPASSWORD")
	}
	if flags.promptPass {
		password, err = promptPassword()
		if err != nil {
			return nil, err
		}
	}
	if password == "" && authMethod == tripload.AuthMethodStandard {
		password = tripload.DefaultPGPassword
	}

	port := flags.pgPort
	if port == 0 {
		port = fileConn.Port
	}
	if port == 0 {
		port = tripload.DefaultPGPort
	}

	conn := tripload.ConnConfig{
		Host:              firstNonEmpty(flags.pgHost, fileConn.Host, tripload.DefaultPGHost),
		Port:              port,
		Database:          firstNonEmpty(flags.pgDatabase, fileConn.Database, tripload.DefaultPGDatabase),
		Username:          firstNonEmpty(flags.pgUser, fileConn.Username, tripload.DefaultPGUser),
		Password:          password,
		SSLMode:           firstNonEmpty(flags.sslMode, fileConn.SSLMode),
		AuthMethod:        authMethod,
		AWSRegion:         firstNonEmpty(flags.awsRegion, fileConn.AWSRegion, os.Getenv("AWS_REGION")),
		AzureTenantID:     firstNonEmpty(flags.azureTenantID, fileConn.AzureTenantID, os.Getenv("AZURE_TENANT_ID")),
		AzureClientID:     firstNonEmpty(flags.azureClientID, fileConn.AzureClientID, os.Getenv("AZURE_CLIENT_ID")),
		AzureClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
		GoogleInstance:    firstNonEmpty(flags.googleInstance, fileConn.GoogleInstance),
	}

	chunkSize := flags.chunkSize
	if !cmd.Flags().Changed("chunksize") && fileIngest.ChunkSize > 0 {
		chunkSize = fileIngest.ChunkSize
	}

	timeout := flags.timeout
	if projectCfg != nil && projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		parsed, parseErr := time.ParseDuration(projectCfg.Timeout)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid timeout in %s: %w", config.ConfigFileName, parseErr)
		}
		timeout = parsed
	}

	cfg := &tripload.IngestConfig{
		URL:         flags.url,
		TargetTable: firstNonEmpty(flags.targetTable, fileIngest.TargetTable),
		ChunkSize:   chunkSize,
		Format:      format,
		Hints:       hints,
		Connection:  conn,
		Timeout:     timeout,
		Verbose:     verbose,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runIngest(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildIngestConfig(cmd, &ingestFlags, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	ingester := services.NewIngestionService(db.NewConnector, logger)

	ctx := context.Background()
	var cancel context.CancelFunc
	if cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling load...")
		cancel()
	}()

	if _, err := ingester.Ingest(ctx, cfg); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	return nil
}
