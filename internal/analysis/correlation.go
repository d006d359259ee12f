package analysis

import (
	"math"

	"goeda/domain/dataset"
	"goeda/domain/report"

	"gonum.org/v1/gonum/stat"
)

// Correlate builds the Pearson correlation matrix over the given ordered
// columns. Each entry is computed pairwise-complete: only rows where both
// columns carry valid numeric values participate, so two different pairs may
// use different row subsets. Pairs involving the label column are restricted
// to train-origin rows. The diagonal is forced to 1 regardless of variance,
// and off-diagonal cells are mirrored from a single computation so the
// matrix is symmetric bit for bit.
func Correlate(ds *dataset.Dataset, columns []string, labelColumn string) *report.CorrelationMatrix {
	n := len(columns)

	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		values[i][i] = 1
		for j := i + 1; j < n; j++ {
			r := pairwisePearson(ds, columns[i], columns[j], labelColumn)
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &report.CorrelationMatrix{Columns: columns, Values: values}
}

// pairwisePearson computes one coefficient over the rows where both columns
// hold valid numbers. A constant column (zero standard deviation over the
// overlap) or an overlap of fewer than two rows yields 0, never NaN, to
// keep the matrix fully populated.
func pairwisePearson(ds *dataset.Dataset, colX, colY, labelColumn string) float64 {
	rows := ds.Rows
	if colX == labelColumn || colY == labelColumn {
		rows = ds.RowsByOrigin(dataset.OriginTrain)
	}

	var xs, ys []float64
	for _, row := range rows {
		x, ok := finiteNumberAt(row, colX)
		if !ok {
			continue
		}
		y, ok := finiteNumberAt(row, colY)
		if !ok {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	if len(xs) < 2 {
		return 0
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
