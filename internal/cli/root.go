// Package cli wires flags, environment, and config files into an
// ingestion run.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tripload",
	Short: "Load trip records into PostgreSQL",
	Long: `tripload streams taxi trip records from a URL or local file into a
PostgreSQL table. Sources may be CSV (optionally gzip-compressed) or
Parquet; the format is detected from the file suffix and can be
overridden with --format.

The target table is dropped and recreated from the first chunk's schema
on every run, then each chunk is appended with the COPY protocol.
Re-running the same load always produces the same table.

Password Resolution (in order):
  1. -W interactive prompt (overrides everything when passed)
  2. --pg-pass flag
  3. $PGPASSWORD environment variable (also via .env)
  4. Default: root (local development convenience)

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments, unresolved format)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  13 - Table create or append failed

Examples:
  # Load a remote gzipped CSV of yellow taxi trips
  tripload --url https://example.com/yellow_tripdata_2021-01.csv.gz \
    --target-table yellow_taxi_trips --taxi-type yellow

  # Load a local parquet file with a smaller chunk size
  tripload --url ./green_tripdata_2021-01.parquet \
    --target-table green_taxi_trips --chunksize 50000

  # Extension-less URL needs an explicit format
  tripload --url https://example.com/export?id=42 --format csv \
    --target-table trips`,
	Args:         cobra.NoArgs,
	RunE:         runIngest,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
