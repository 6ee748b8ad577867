package tripload

import (
	"errors"
	"fmt"
	"time"
)

// Format identifies the on-disk encoding of a trip data source.
type Format int

const (
	// FormatUnknown means the format could not be determined from the locator.
	FormatUnknown Format = iota
	// FormatCSV is row-oriented delimited text, optionally gzip-compressed.
	FormatCSV
	// FormatParquet is the self-describing columnar binary format.
	FormatParquet
)

// String returns a human-readable string representation of the Format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatParquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// ParseFormat converts a CLI-supplied format name to a Format.
// An empty string maps to FormatUnknown without error so callers can
// distinguish "not given" from "given but invalid".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "":
		return FormatUnknown, nil
	case "csv":
		return FormatCSV, nil
	case "parquet":
		return FormatParquet, nil
	default:
		return FormatUnknown, fmt.Errorf("invalid format %q (expected csv or parquet): %w", s, ErrInvalidConfig)
	}
}

// ColumnType is the semantic type of a column as seen by the loader.
// It maps 1:1 to a PostgreSQL column type when the destination table
// is created from the first batch.
type ColumnType int

const (
	// TypeText is the catch-all string type.
	TypeText ColumnType = iota
	// TypeInteger is a 64-bit signed integer.
	TypeInteger
	// TypeFloat is a 64-bit floating point number.
	TypeFloat
	// TypeTimestamp is a date-time value without time zone.
	TypeTimestamp
	// TypeBool is a boolean value.
	TypeBool
)

// String returns the name of the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeTimestamp:
		return "timestamp"
	case TypeBool:
		return "bool"
	default:
		return "text"
	}
}

// Column describes a single column of a batch schema.
type Column struct {
	Name string
	Type ColumnType
}

// Schema is the ordered column set shared by every record of a batch.
type Schema []Column

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Equal reports whether two schemas have the same columns in the same order.
// Types are compared as well: the destination table is typed by the first
// batch, so a type change mid-load is a schema mismatch.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Batch is a bounded group of records sharing a fixed schema.
// Row values are one of int64, float64, string, time.Time, bool, or nil.
type Batch struct {
	Schema Schema
	Rows   [][]any
}

// NumRows returns the number of records in the batch.
func (b *Batch) NumRows() int {
	return len(b.Rows)
}

// TypeHints is a caller-supplied mapping from column name to semantic type,
// applied only to CSV input. Parquet carries its own schema and ignores hints.
type TypeHints struct {
	// Types maps column names to their expected type. Columns absent from
	// the map fall back to type inference on the first chunk.
	Types map[string]ColumnType

	// DatetimeColumns lists columns parsed as timestamps during decode.
	DatetimeColumns []string
}

// TypeOf returns the hinted type for a column and whether a hint exists.
// Datetime columns always report TypeTimestamp.
func (h *TypeHints) TypeOf(column string) (ColumnType, bool) {
	if h == nil {
		return TypeText, false
	}
	for _, c := range h.DatetimeColumns {
		if c == column {
			return TypeTimestamp, true
		}
	}
	t, ok := h.Types[column]
	return t, ok
}

// IngestConfig contains all parameters needed for a single ingestion run.
type IngestConfig struct {
	// URL is the source locator: an http(s) URL or a local file path.
	URL string

	// TargetTable is the destination table name. The table is dropped and
	// recreated from the first batch's schema on every run.
	TargetTable string

	// ChunkSize is the maximum number of records per batch.
	ChunkSize int

	// Format overrides suffix-based detection when set. When FormatUnknown,
	// the format is resolved from the URL suffix.
	Format Format

	// Hints is the optional column type mapping, applied only to CSV input.
	Hints *TypeHints

	// Connection carries the database connection parameters.
	Connection ConnConfig

	// Timeout bounds the whole run. Zero means no timeout.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks that the IngestConfig has all required fields.
// Returns a joined error listing every violation.
func (c *IngestConfig) Validate() error {
	var errs []error

	if c.URL == "" {
		errs = append(errs, fmt.Errorf("URL is required: %w", ErrInvalidConfig))
	}
	if c.TargetTable == "" {
		errs = append(errs, fmt.Errorf("TargetTable is required: %w", ErrInvalidConfig))
	}
	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("ChunkSize must be positive, got %d: %w", c.ChunkSize, ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// AuthMethod represents the database authentication mechanism to use.
type AuthMethod int

const (
	AuthMethodStandard AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                     // AWS RDS IAM Database Authentication
	AuthMethodAzureEntraID               // Azure Active Directory (Entra ID)
	AuthMethodGoogleIAM                  // Google Cloud SQL IAM
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "standard"
	case AuthMethodAWSIAM:
		return "aws-iam"
	case AuthMethodAzureEntraID:
		return "azure"
	case AuthMethodGoogleIAM:
		return "google-iam"
	default:
		return "unknown"
	}
}

// ParseAuthMethod converts an auth method name to an AuthMethod.
// An empty string maps to standard password authentication.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch s {
	case "", "standard":
		return AuthMethodStandard, nil
	case "aws-iam":
		return AuthMethodAWSIAM, nil
	case "azure":
		return AuthMethodAzureEntraID, nil
	case "google-iam":
		return AuthMethodGoogleIAM, nil
	default:
		return AuthMethodStandard, fmt.Errorf("invalid auth method %q (expected standard, aws-iam, azure, or google-iam): %w", s, ErrInvalidConfig)
	}
}

// ConnConfig represents resolved PostgreSQL connection parameters.
type ConnConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use.
	AuthMethod AuthMethod

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// Azure Entra ID parameters (used when AuthMethod is AuthMethodAzureEntraID).
	// If tenant, client and secret are all set, Service Principal auth is used;
	// otherwise the DefaultAzureCredential chain applies.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance), required for AuthMethodGoogleIAM.
	GoogleInstance string
}
