package dataset

import (
	"strconv"
)

// ===== Cell & Row Model =====

// A cell holds one of three value kinds: float64 (number), string (text),
// or nil (absent). Absent unifies null, missing-key, and empty-string
// representations encountered during ingestion.

// Row maps column names to cell values
type Row map[string]interface{}

// RecordBatch is one parsed source file: ordered column names plus rows.
// Column order is the source header order; merge relies on it to build the
// first-seen column union.
type RecordBatch struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// IsEmpty reports whether the batch carries no data rows
func (b RecordBatch) IsEmpty() bool {
	return len(b.Rows) == 0
}

// ===== Origin Tagging =====

// OriginColumn is the synthetic column appended to every merged dataset
const OriginColumn = "origin"

const (
	OriginTrain = "train"
	OriginTest  = "test"
)

// ===== Column Kinds =====

// ColumnKind classifies a column for downstream analysis
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// ===== Dataset =====

// Dataset is the merged, origin-tagged table. Columns holds the ordered
// union of source columns with the origin column appended last. Every row
// exposes every column; cells a source batch lacked are absent (nil).
// Row order is append order: all train rows, then all test rows.
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// RowCount returns the total number of rows across both origins
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// ColumnCount returns the number of columns including origin
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// HasColumn reports whether the dataset carries the named column
func (d *Dataset) HasColumn(name string) bool {
	for _, col := range d.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// OriginCounts returns the number of train and test rows
func (d *Dataset) OriginCounts() (train, test int) {
	for _, row := range d.Rows {
		switch row[OriginColumn] {
		case OriginTrain:
			train++
		case OriginTest:
			test++
		}
	}
	return train, test
}

// RowsByOrigin returns the rows tagged with the given origin, in dataset order
func (d *Dataset) RowsByOrigin(origin string) []Row {
	var rows []Row
	for _, row := range d.Rows {
		if row[OriginColumn] == origin {
			rows = append(rows, row)
		}
	}
	return rows
}

// SampleRows returns the first min(limit, RowCount) rows in dataset order
func (d *Dataset) SampleRows(limit int) []Row {
	if limit > len(d.Rows) {
		limit = len(d.Rows)
	}
	return d.Rows[:limit]
}

// ===== Cell Accessors =====

// IsAbsent reports whether the row has no usable value at the column.
// Missing keys, nil cells, and empty strings all read as absent.
func IsAbsent(row Row, col string) bool {
	v, exists := row[col]
	if !exists || v == nil {
		return true
	}
	if s, ok := v.(string); ok && s == "" {
		return true
	}
	return false
}

// NumberAt returns the cell as a number. The second return is false for
// absent and text cells. Non-finite numbers are returned as-is; callers
// doing statistics must filter them.
func NumberAt(row Row, col string) (float64, bool) {
	v, exists := row[col]
	if !exists || v == nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// TextAt returns the cell as text. The second return is false for absent
// and numeric cells.
func TextAt(row Row, col string) (string, bool) {
	v, exists := row[col]
	if !exists || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Stringify renders a present cell for categorical tallies and export.
// Numbers use the shortest round-trip decimal form.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	default:
		return ""
	}
}
