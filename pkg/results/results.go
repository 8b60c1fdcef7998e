// Package results persists benchmark measurements as flat .bench tables.
//
// A .bench file is plain delimited text: the first line holds comma-joined
// column headers, each following line one row of numeric values. Exactly one
// header carries a leading underscore and marks the independent (x axis)
// column, so downstream tooling can identify it without guessing.
package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// Extension is the suffix of every result file.
	Extension = ".bench"

	timestampLayout = "2006-01-02_15-04-05"
)

// Table holds a parsed result file: parallel columns in header order.
type Table struct {
	Headers []string
	Columns [][]float64
}

// XAxis returns the independent column's header (without the underscore
// marker) and values.
func (t *Table) XAxis() (string, []float64, error) {
	for i, h := range t.Headers {
		if strings.HasPrefix(h, "_") {
			return h[1:], t.Columns[i], nil
		}
	}
	return "", nil, fmt.Errorf("results: no independent column in %v", t.Headers)
}

// Column returns the values for a named header, if present.
func (t *Table) Column(header string) ([]float64, bool) {
	for i, h := range t.Headers {
		if h == header {
			return t.Columns[i], true
		}
	}
	return nil, false
}

// Write persists a named table under dir. The file name embeds the given
// name (workload and database identity) and a creation timestamp so repeated
// runs never collide. All columns must have equal length and exactly one
// header must carry the underscore marker; violations are caller errors and
// fail before any I/O.
func Write(dir, name string, headers []string, columns [][]float64) (string, error) {
	if err := validate(headers, columns); err != nil {
		return "", err
	}

	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("results: create output directory: %w", err)
		}
	}

	timestamp := time.Now().Format(timestampLayout)
	path := filepath.Join(dir, fmt.Sprintf("%s_%s%s", name, timestamp, Extension))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("results: create file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("results: write header: %w", err)
	}

	row := make([]string, len(columns))
	for i := 0; i < len(columns[0]); i++ {
		for j, col := range columns {
			row[j] = strconv.FormatFloat(col[i], 'f', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("results: write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("results: flush: %w", err)
	}
	return path, nil
}

func validate(headers []string, columns [][]float64) error {
	if len(headers) == 0 || len(headers) != len(columns) {
		return fmt.Errorf("results: %d headers for %d columns", len(headers), len(columns))
	}

	independent := 0
	for _, h := range headers {
		if strings.HasPrefix(h, "_") {
			independent++
		}
	}
	if independent != 1 {
		return fmt.Errorf("results: exactly one independent (_-prefixed) header required, got %d", independent)
	}

	want := len(columns[0])
	for i, col := range columns {
		if len(col) != want {
			return fmt.Errorf("results: column %q has %d values, want %d", headers[i], len(col), want)
		}
	}
	return nil
}

// Read parses a .bench file back into a Table. Trailing commas and short
// rows are tolerated; missing cells stay zero.
func Read(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("results: open file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("results: read header: %w", err)
	}

	t := &Table{
		Headers: headers,
		Columns: make([][]float64, len(headers)),
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("results: read row: %w", err)
		}
		for i := range t.Headers {
			var v float64
			if i < len(row) && row[i] != "" {
				v, err = strconv.ParseFloat(row[i], 64)
				if err != nil {
					return nil, fmt.Errorf("results: parse %q in column %q: %w", row[i], t.Headers[i], err)
				}
			}
			t.Columns[i] = append(t.Columns[i], v)
		}
	}

	return t, nil
}
