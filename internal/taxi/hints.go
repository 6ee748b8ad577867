// Package taxi holds the predefined type-hint sets for NYC TLC trip
// record exports. The CSV exports carry no schema, and several numeric
// columns contain empty cells, so loading them without hints infers the
// wrong types on sparse months.
package taxi

import (
	"fmt"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// sharedTypes are the columns common to yellow and green trip records.
func sharedTypes() map[string]tripload.ColumnType {
	return map[string]tripload.ColumnType{
		"VendorID":              tripload.TypeInteger,
		"passenger_count":       tripload.TypeInteger,
		"trip_distance":         tripload.TypeFloat,
		"RatecodeID":            tripload.TypeInteger,
		"store_and_fwd_flag":    tripload.TypeText,
		"PULocationID":          tripload.TypeInteger,
		"DOLocationID":          tripload.TypeInteger,
		"payment_type":          tripload.TypeInteger,
		"fare_amount":           tripload.TypeFloat,
		"extra":                 tripload.TypeFloat,
		"mta_tax":               tripload.TypeFloat,
		"tip_amount":            tripload.TypeFloat,
		"tolls_amount":          tripload.TypeFloat,
		"improvement_surcharge": tripload.TypeFloat,
		"total_amount":          tripload.TypeFloat,
		"congestion_surcharge":  tripload.TypeFloat,
	}
}

// YellowHints returns the type-hint set for yellow taxi trip records.
func YellowHints() *tripload.TypeHints {
	return &tripload.TypeHints{
		Types:           sharedTypes(),
		DatetimeColumns: []string{"tpep_pickup_datetime", "tpep_dropoff_datetime"},
	}
}

// GreenHints returns the type-hint set for green taxi trip records.
// Green records add a trip_type column and use lpep datetime prefixes.
func GreenHints() *tripload.TypeHints {
	types := sharedTypes()
	types["trip_type"] = tripload.TypeInteger
	return &tripload.TypeHints{
		Types:           types,
		DatetimeColumns: []string{"lpep_pickup_datetime", "lpep_dropoff_datetime"},
	}
}

// HintsFor maps a --taxi-type value to its hint set.
// An empty value means no hints.
func HintsFor(taxiType string) (*tripload.TypeHints, error) {
	switch taxiType {
	case "":
		return nil, nil
	case "yellow":
		return YellowHints(), nil
	case "green":
		return GreenHints(), nil
	default:
		return nil, fmt.Errorf("invalid taxi type %q (expected yellow or green): %w",
			taxiType, tripload.ErrInvalidConfig)
	}
}
