package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// readParquetChunks decodes the entire source into one in-memory Arrow
// table, then slices it into contiguous chunkSize-row batches. Parquet has
// no incremental decode from a plain byte stream (the format needs random
// access), so bounded memory holds only per-batch, not for the whole file.
// Type hints never apply: the embedded schema wins.
func readParquetChunks(ctx context.Context, r io.Reader, chunkSize int, fn ChunkFunc) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return fmt.Errorf("failed to read parquet table: %w", err)
	}
	defer table.Release()

	if table.NumRows() == 0 {
		return nil
	}

	arrowSchema := table.Schema()
	schema := make(tripload.Schema, arrowSchema.NumFields())
	for i, field := range arrowSchema.Fields() {
		schema[i] = tripload.Column{Name: field.Name, Type: columnTypeFromArrow(field.Type)}
	}

	tableReader := array.NewTableReader(table, int64(chunkSize))
	defer tableReader.Release()

	for tableReader.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		record := tableReader.Record()
		numRows := int(record.NumRows())
		rows := make([][]any, numRows)
		for i := 0; i < numRows; i++ {
			row := make([]any, record.NumCols())
			for j, col := range record.Columns() {
				row[j] = arrowValue(col, i)
			}
			rows[i] = row
		}

		if err := fn(&tripload.Batch{Schema: schema, Rows: rows}); err != nil {
			return err
		}
	}

	if err := tableReader.Err(); err != nil {
		return fmt.Errorf("error slicing parquet table: %w", err)
	}
	return nil
}

// columnTypeFromArrow maps an Arrow field type onto the loader's type set.
func columnTypeFromArrow(dt arrow.DataType) tripload.ColumnType {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return tripload.TypeInteger
	case arrow.FLOAT32, arrow.FLOAT64:
		return tripload.TypeFloat
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		return tripload.TypeTimestamp
	case arrow.BOOL:
		return tripload.TypeBool
	default:
		return tripload.TypeText
	}
}

// arrowValue extracts one cell as a Go value. Nulls map to nil; integer
// widths collapse to int64 and float widths to float64 to match the
// loader's row representation.
func arrowValue(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}

	switch arr := col.(type) {
	case *array.Int8:
		return int64(arr.Value(i))
	case *array.Int16:
		return int64(arr.Value(i))
	case *array.Int32:
		return int64(arr.Value(i))
	case *array.Int64:
		return arr.Value(i)
	case *array.Uint8:
		return int64(arr.Value(i))
	case *array.Uint16:
		return int64(arr.Value(i))
	case *array.Uint32:
		return int64(arr.Value(i))
	case *array.Uint64:
		return int64(arr.Value(i))
	case *array.Float32:
		return float64(arr.Value(i))
	case *array.Float64:
		return arr.Value(i)
	case *array.String:
		return arr.Value(i)
	case *array.LargeString:
		return arr.Value(i)
	case *array.Boolean:
		return arr.Value(i)
	case *array.Timestamp:
		dt := arr.DataType().(*arrow.TimestampType)
		return arr.Value(i).ToTime(dt.Unit)
	case *array.Date32:
		return arr.Value(i).ToTime()
	case *array.Date64:
		return arr.Value(i).ToTime()
	default:
		return col.ValueStr(i)
	}
}
