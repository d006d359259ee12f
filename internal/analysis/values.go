package analysis

import (
	"math"

	"goeda/domain/dataset"
)

// finiteNumberAt returns the cell as a finite number. Absent cells, text
// cells, and non-finite numbers all return false.
func finiteNumberAt(row dataset.Row, col string) (float64, bool) {
	v, ok := dataset.NumberAt(row, col)
	if !ok {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// collectNumeric gathers every valid (present, finite) numeric value of the
// column across the given rows, in row order
func collectNumeric(rows []dataset.Row, col string) []float64 {
	var values []float64
	for _, row := range rows {
		if v, ok := finiteNumberAt(row, col); ok {
			values = append(values, v)
		}
	}
	return values
}
