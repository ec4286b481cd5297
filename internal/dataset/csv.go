package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// LoadCSV reads a CSV file into a frame. The first record is the header.
// A column whose every cell parses as a number becomes a Number column;
// everything else stays String. Empty files (header only) are valid.
func LoadCSV(name, path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset %q: parsing %s: %w", name, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %q: %s has no header row", name, path)
	}

	header := records[0]
	body := records[1:]

	numeric := make([]bool, len(header))
	for col := range header {
		numeric[col] = len(body) > 0
		for _, record := range body {
			if _, err := strconv.ParseFloat(record[col], 64); err != nil {
				numeric[col] = false
				break
			}
		}
	}

	rows := make([][]cty.Value, len(body))
	for i, record := range body {
		row := make([]cty.Value, len(header))
		for col, cell := range record {
			if numeric[col] {
				v, _ := strconv.ParseFloat(cell, 64)
				row[col] = cty.NumberFloatVal(v)
			} else {
				row[col] = cty.StringVal(cell)
			}
		}
		rows[i] = row
	}

	return New(name, header, rows)
}
