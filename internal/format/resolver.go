// Package format resolves the on-disk encoding of a trip data source
// from its locator suffix.
package format

import (
	"fmt"
	"strings"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// Resolve determines the source format for a locator.
// A non-unknown override wins unconditionally. Otherwise the locator's
// suffix decides, case-insensitively: .parquet is columnar, .csv and
// .csv.gz are delimited text. Anything else is a configuration error
// surfaced before any I/O happens.
func Resolve(locator string, override tripload.Format) (tripload.Format, error) {
	if override != tripload.FormatUnknown {
		return override, nil
	}

	lower := strings.ToLower(locator)
	switch {
	case strings.HasSuffix(lower, ".parquet"):
		return tripload.FormatParquet, nil
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".csv.gz"):
		return tripload.FormatCSV, nil
	}

	return tripload.FormatUnknown, fmt.Errorf(
		"%w: %q (specify --format csv or --format parquet)",
		tripload.ErrUnknownFormat, locator)
}

// IsGzipped reports whether the locator denotes a gzip-compressed file.
func IsGzipped(locator string) bool {
	return strings.HasSuffix(strings.ToLower(locator), ".gz")
}
