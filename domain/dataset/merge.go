package dataset

import (
	"goeda/internal/errors"
)

// Merge combines a train batch and a test batch into one origin-tagged
// dataset. The column list is the first-seen union of both batches' columns
// with the origin column appended last. Rows keep append order: every train
// row, then every test row. Inputs are copied, never aliased or mutated.
//
// Either batch being empty is an error: downstream statistics assume at
// least one row per split, so "no data" is rejected here rather than
// producing a degenerate dataset.
func Merge(train, test RecordBatch) (*Dataset, error) {
	if train.IsEmpty() {
		return nil, errors.EmptyInput("train batch has no rows")
	}
	if test.IsEmpty() {
		return nil, errors.EmptyInput("test batch has no rows")
	}

	columns := unionColumns(train.Columns, test.Columns)
	columns = append(columns, OriginColumn)

	rows := make([]Row, 0, len(train.Rows)+len(test.Rows))
	rows = appendStamped(rows, train.Rows, columns, OriginTrain)
	rows = appendStamped(rows, test.Rows, columns, OriginTest)

	return &Dataset{Columns: columns, Rows: rows}, nil
}

// unionColumns builds the first-seen ordered union of the two column lists
func unionColumns(first, second []string) []string {
	seen := make(map[string]bool, len(first)+len(second))
	union := make([]string, 0, len(first)+len(second))
	for _, col := range first {
		if !seen[col] {
			seen[col] = true
			union = append(union, col)
		}
	}
	for _, col := range second {
		if !seen[col] {
			seen[col] = true
			union = append(union, col)
		}
	}
	return union
}

// appendStamped copies each source row onto the full column set, filling
// columns the source lacked with absent cells and stamping the origin
func appendStamped(dst []Row, src []Row, columns []string, origin string) []Row {
	for _, srcRow := range src {
		row := make(Row, len(columns))
		for _, col := range columns {
			if col == OriginColumn {
				continue
			}
			if v, exists := srcRow[col]; exists {
				row[col] = v
			} else {
				row[col] = nil
			}
		}
		row[OriginColumn] = origin
		dst = append(dst, row)
	}
	return dst
}
