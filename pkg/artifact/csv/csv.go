package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Decode parses a CSV artifact export into generic records keyed by the
// header row. Cells stay strings; list-valued columns arrive as JSON array
// cells and are split downstream. Blank rows are skipped.
func Decode(data []byte) ([]map[string]any, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty csv file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []map[string]any
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		record := make(map[string]any, len(header))
		empty := true
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			record[header[i]] = cell
			empty = false
		}
		if empty {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
