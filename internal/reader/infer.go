package reader

import (
	"strconv"
	"strings"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// inferColumnType widens over the sample values of one column:
// integers stay Integer, a mix of integers and floats becomes Float,
// consistent timestamps become Timestamp, anything else is Text.
// Empty cells carry no type information and are skipped.
func inferColumnType(values []string) tripload.ColumnType {
	hasInteger := false
	hasFloat := false
	hasTimestamp := false
	hasText := false
	sawValue := false

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		sawValue = true

		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			hasInteger = true
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			hasFloat = true
			continue
		}
		if _, err := parseTimestamp(v); err == nil {
			hasTimestamp = true
			continue
		}
		hasText = true
	}

	switch {
	case !sawValue || hasText:
		return tripload.TypeText
	case hasTimestamp && !hasInteger && !hasFloat:
		return tripload.TypeTimestamp
	case hasTimestamp:
		return tripload.TypeText
	case hasFloat:
		return tripload.TypeFloat
	case hasInteger:
		return tripload.TypeInteger
	default:
		return tripload.TypeText
	}
}
