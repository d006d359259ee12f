package analysis

import (
	"math"
	"sort"

	"goeda/domain/dataset"
	"goeda/domain/report"

	"github.com/montanaflynn/stats"
)

// topValueLimit caps how many categorical values a summary reports
const topValueLimit = 10

// Summarize builds the per-column summary map over every row of the dataset,
// both origins. Excluded columns are skipped. Numeric columns with zero
// valid values are omitted from the map entirely rather than carrying
// NaN/Infinity fields; absence of data is the expected steady state, never
// an error.
func Summarize(ds *dataset.Dataset, kinds map[string]dataset.ColumnKind, cfg Config) map[string]report.ColumnSummary {
	summaries := make(map[string]report.ColumnSummary)

	for _, col := range ds.Columns {
		if cfg.IsExcluded(col) {
			continue
		}

		switch kinds[col] {
		case dataset.KindNumeric:
			if summary, ok := numericSummary(ds.Rows, col); ok {
				summaries[col] = report.ColumnSummary{
					Kind:    dataset.KindNumeric,
					Numeric: &summary,
				}
			}
		default:
			summary := categoricalSummary(ds.Rows, col)
			summaries[col] = report.ColumnSummary{
				Kind:        dataset.KindCategorical,
				Categorical: &summary,
			}
		}
	}

	return summaries
}

// numericSummary computes the distribution summary over valid values.
// The second return is false when the column has zero valid values.
func numericSummary(rows []dataset.Row, col string) (report.NumericSummary, bool) {
	values := collectNumeric(rows, col)
	if len(values) == 0 {
		return report.NumericSummary{}, false
	}

	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StandardDeviation(values)
	minVal, _ := stats.Min(values)
	maxVal, _ := stats.Max(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return report.NumericSummary{
		Count:        len(values),
		MissingCount: len(rows) - len(values),
		Mean:         mean,
		Median:       nearestRank(sorted, 0.50),
		StdDev:       stdDev,
		Min:          minVal,
		Max:          maxVal,
		Q1:           nearestRank(sorted, 0.25),
		Q3:           nearestRank(sorted, 0.75),
	}, true
}

// nearestRank picks sorted[floor(p*n)], clamped to the valid index range.
// No interpolation between ranks.
func nearestRank(sorted []float64, p float64) float64 {
	idx := int(math.Floor(p * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// categoricalSummary tallies present values, stringified, ignoring absent
// cells. Top values are ordered by count descending with first-encountered
// tie-break and truncated to the reporting limit.
func categoricalSummary(rows []dataset.Row, col string) report.CategoricalSummary {
	counts := make(map[string]int)
	var firstSeen []string

	present := 0
	for _, row := range rows {
		if dataset.IsAbsent(row, col) {
			continue
		}
		value := dataset.Stringify(row[col])
		if counts[value] == 0 {
			firstSeen = append(firstSeen, value)
		}
		counts[value]++
		present++
	}

	topValues := make([]report.ValueCount, 0, len(firstSeen))
	for _, value := range firstSeen {
		topValues = append(topValues, report.ValueCount{Value: value, Count: counts[value]})
	}
	sort.SliceStable(topValues, func(i, j int) bool {
		return topValues[i].Count > topValues[j].Count
	})
	if len(topValues) > topValueLimit {
		topValues = topValues[:topValueLimit]
	}

	return report.CategoricalSummary{
		Count:            present,
		MissingCount:     len(rows) - present,
		UniqueValueCount: len(counts),
		TopValues:        topValues,
	}
}
