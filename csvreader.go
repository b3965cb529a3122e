package breakup

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
)

// CSVReader tokenizes a comma separated file into rows of cells. Rows may
// differ in width; quoted cells keep their inner whitespace. Typed access
// to primitive cells goes through the cell helpers, which map malformed
// content to the zero value the way a formatted read would.
type CSVReader struct {
	filepath  string
	hasHeader bool
}

// NewCSVReader returns a reader for the given file. When hasHeader is set
// the first row is dropped from ReadLines and served by Header instead.
func NewCSVReader(filepath string, hasHeader bool) *CSVReader {
	return &CSVReader{filepath: filepath, hasHeader: hasHeader}
}

// ReadLines returns all data rows of the file.
func (r *CSVReader) ReadLines() ([][]string, error) {
	rows, err := r.readAll()
	if err != nil {
		return nil, err
	}
	if r.hasHeader && len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}

// Header returns the first row. Calling it on a reader configured without
// a header is a usage error.
func (r *CSVReader) Header() ([]string, error) {
	if !r.hasHeader {
		return nil, fmt.Errorf("CSV file %s was declared header-less: %w", r.filepath, ErrParse)
	}
	rows, err := r.readAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file %s is empty: %w", r.filepath, ErrParse)
	}
	return rows[0], nil
}

func (r *CSVReader) readAll() ([][]string, error) {
	file, err := os.Open(r.filepath)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file %s: %w", r.filepath, ErrInputIO)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV file %s: %w", r.filepath, ErrParse)
	}
	return rows, nil
}

// cellString returns the cell at the given column, or "" past the row end.
func cellString(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// cellFloat parses the cell as a float. Malformed or missing cells read
// as zero.
func cellFloat(row []string, col int) float64 {
	return cast.ToFloat64(cellString(row, col))
}

// cellInt parses the cell as a decimal integer. Leading zeros are dropped
// first, so zero padded catalog numbers do not read as octal. Malformed or
// missing cells read as zero.
func cellInt(row []string, col int) int64 {
	return cast.ToInt64(strings.TrimLeft(strings.TrimSpace(cellString(row, col)), "0"))
}
