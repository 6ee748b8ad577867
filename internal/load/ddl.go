package load

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// pgType maps a semantic column type onto its PostgreSQL column type.
func pgType(t tripload.ColumnType) string {
	switch t {
	case tripload.TypeInteger:
		return "BIGINT"
	case tripload.TypeFloat:
		return "DOUBLE PRECISION"
	case tripload.TypeTimestamp:
		return "TIMESTAMP"
	case tripload.TypeBool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// dropTableSQL returns the statement removing any pre-existing table of the
// same name. Identifiers are sanitized with pgx to survive mixed-case taxi
// column names and hostile input alike.
func dropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", pgx.Identifier{table}.Sanitize())
}

// createTableSQL returns the CREATE TABLE statement derived from a batch
// schema. The table is created with zero rows; data arrives via COPY.
func createTableSQL(table string, schema tripload.Schema) string {
	cols := make([]string, len(schema))
	for i, c := range schema {
		cols[i] = fmt.Sprintf("%s %s", pgx.Identifier{c.Name}.Sanitize(), pgType(c.Type))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", pgx.Identifier{table}.Sanitize(), strings.Join(cols, ", "))
}
