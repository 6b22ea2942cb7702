package plot

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Dataset is an ordered, immutable, column-typed table. Columns are either
// numeric (float64) or string. Row order is preserved and determines the
// natural level order of discrete columns (first appearance).
type Dataset struct {
	names []string
	cols  map[string]*column
	n     int
}

type column struct {
	numeric bool
	nums    []float64
	strs    []string
}

// ReadCSV parses delimited text into a Dataset. The first record is the
// header; a column is numeric iff every non-empty cell parses as a float.
// Ragged records fail with MalformedDatasetError.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // raggedness is reported with a row number below

	header, err := cr.Read()
	if err == io.EOF {
		return nil, MalformedDatasetError{Row: 0, Err: fmt.Errorf("empty input")}
	} else if err != nil {
		return nil, MalformedDatasetError{Row: 0, Err: err}
	}

	records := [][]string{}
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, MalformedDatasetError{Row: row, Err: err}
		} else if len(record) != len(header) {
			return nil, MalformedDatasetError{Row: row, Err: fmt.Errorf("got %d fields, expected %d", len(record), len(header))}
		}
		records = append(records, record)
	}
	return DatasetFromRecords(header, records)
}

// ReadCSVFile is ReadCSV on the named file.
func ReadCSVFile(filename string) (*Dataset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// DatasetFromRecords builds a Dataset from a header and rows of cells. Every
// row must have exactly one cell per header name.
func DatasetFromRecords(header []string, records [][]string) (*Dataset, error) {
	ds := &Dataset{
		names: append([]string{}, header...),
		cols:  map[string]*column{},
		n:     len(records),
	}
	for j, name := range header {
		if _, ok := ds.cols[name]; ok {
			return nil, MalformedDatasetError{Row: 0, Err: fmt.Errorf("duplicate column %q", name)}
		}

		numeric := true
		for _, record := range records {
			if len(record) != len(header) {
				return nil, MalformedDatasetError{Row: 0, Err: fmt.Errorf("got %d fields, expected %d", len(record), len(header))}
			}
			if cell := record[j]; cell != "" {
				if _, err := strconv.ParseFloat(cell, 64); err != nil {
					numeric = false
					break
				}
			}
		}

		col := &column{numeric: numeric}
		if numeric {
			col.nums = make([]float64, len(records))
			for i, record := range records {
				if record[j] == "" {
					col.nums[i] = math.NaN()
				} else {
					col.nums[i], _ = strconv.ParseFloat(record[j], 64)
				}
			}
		} else {
			col.strs = make([]string, len(records))
			for i, record := range records {
				col.strs[i] = record[j]
			}
		}
		ds.cols[name] = col
	}
	return ds, nil
}

// Len returns the number of rows.
func (ds *Dataset) Len() int {
	return ds.n
}

// Columns returns the column names in their original order.
func (ds *Dataset) Columns() []string {
	return append([]string{}, ds.names...)
}

// Has returns whether the named column exists.
func (ds *Dataset) Has(name string) bool {
	_, ok := ds.cols[name]
	return ok
}

// Numeric returns whether the named column is numeric.
func (ds *Dataset) Numeric(name string) bool {
	col, ok := ds.cols[name]
	return ok && col.numeric
}

// Float returns the numeric value at row i, or NaN if the column is absent
// or not numeric.
func (ds *Dataset) Float(name string, i int) float64 {
	if col, ok := ds.cols[name]; ok && col.numeric {
		return col.nums[i]
	}
	return math.NaN()
}

// String returns the cell at row i as a string. Numeric cells are formatted
// with %g.
func (ds *Dataset) String(name string, i int) string {
	col, ok := ds.cols[name]
	if !ok {
		return ""
	}
	if col.numeric {
		return strconv.FormatFloat(col.nums[i], 'g', -1, 64)
	}
	return col.strs[i]
}

// Levels returns the distinct values of the named column in order of first
// appearance.
func (ds *Dataset) Levels(name string) []string {
	col, ok := ds.cols[name]
	if !ok {
		return nil
	}
	levels := []string{}
	seen := map[string]bool{}
	for i := 0; i < ds.n; i++ {
		var v string
		if col.numeric {
			v = strconv.FormatFloat(col.nums[i], 'g', -1, 64)
		} else {
			v = col.strs[i]
		}
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	return levels
}
