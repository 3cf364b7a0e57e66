package parquet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// Decode reads every row of a parquet file into generic records keyed by
// top-level column name. Values of nested (list) columns accumulate into
// []any in row order; null values leave their key absent.
func Decode(data []byte) ([]map[string]any, error) {
	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	columns := file.Schema().Columns()
	names := make([]string, len(columns))
	nested := make([]bool, len(columns))
	for i, path := range columns {
		names[i] = path[0]
		nested[i] = len(path) > 1
	}

	var records []map[string]any
	for _, rowGroup := range file.RowGroups() {
		rows := rowGroup.Rows()
		buf := make([]parquet.Row, 64)
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				records = append(records, decodeRow(row, names, nested))
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to read parquet rows: %w", err)
			}
			if n == 0 {
				break
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("failed to close parquet row reader: %w", err)
		}
	}
	return records, nil
}

func decodeRow(row parquet.Row, names []string, nested []bool) map[string]any {
	record := make(map[string]any, len(names))
	for _, value := range row {
		column := value.Column()
		if column < 0 || column >= len(names) {
			continue
		}
		if value.IsNull() {
			continue
		}
		name := names[column]
		if nested[column] {
			list, _ := record[name].([]any)
			record[name] = append(list, scalar(value))
		} else {
			record[name] = scalar(value)
		}
	}
	return record
}

func scalar(value parquet.Value) any {
	switch value.Kind() {
	case parquet.Boolean:
		return value.Boolean()
	case parquet.Int32:
		return int64(value.Int32())
	case parquet.Int64:
		return value.Int64()
	case parquet.Float:
		return float64(value.Float())
	case parquet.Double:
		return value.Double()
	default:
		return value.String()
	}
}
