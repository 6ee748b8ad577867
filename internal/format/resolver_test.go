package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/tripload/pkg/tripload"
)

func TestResolve_SuffixDetection(t *testing.T) {
	testCases := []struct {
		name    string
		locator string
		want    tripload.Format
	}{
		{
			name:    "parquet file",
			locator: "https://example.com/data/yellow_tripdata_2021-01.parquet",
			want:    tripload.FormatParquet,
		},
		{
			name:    "parquet uppercase suffix",
			locator: "trips.PARQUET",
			want:    tripload.FormatParquet,
		},
		{
			name:    "plain csv",
			locator: "/data/green_tripdata_2021-01.csv",
			want:    tripload.FormatCSV,
		},
		{
			name:    "gzipped csv",
			locator: "https://example.com/green_tripdata_2021-01.csv.gz",
			want:    tripload.FormatCSV,
		},
		{
			name:    "mixed case csv.gz",
			locator: "trips.CSV.GZ",
			want:    tripload.FormatCSV,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.locator, tripload.FormatUnknown)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolve_OverrideWins(t *testing.T) {
	// Override applies even when the suffix says otherwise.
	got, err := Resolve("trips.parquet", tripload.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, tripload.FormatCSV, got)

	got, err = Resolve("no-suffix-at-all", tripload.FormatParquet)
	require.NoError(t, err)
	assert.Equal(t, tripload.FormatParquet, got)
}

func TestResolve_UnknownSuffixWithoutOverride(t *testing.T) {
	testCases := []string{
		"https://example.com/data.json",
		"trips.csv.zip",
		"trips",
		"",
	}

	for _, locator := range testCases {
		t.Run(locator, func(t *testing.T) {
			got, err := Resolve(locator, tripload.FormatUnknown)
			assert.Equal(t, tripload.FormatUnknown, got)
			assert.True(t, errors.Is(err, tripload.ErrUnknownFormat), "expected ErrUnknownFormat, got: %v", err)
		})
	}
}

func TestIsGzipped(t *testing.T) {
	assert.True(t, IsGzipped("trips.csv.gz"))
	assert.True(t, IsGzipped("trips.CSV.GZ"))
	assert.False(t, IsGzipped("trips.csv"))
	assert.False(t, IsGzipped("trips.parquet"))
}
