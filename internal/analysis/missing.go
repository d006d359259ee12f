package analysis

import (
	"math"
	"sort"

	"goeda/domain/dataset"
	"goeda/domain/report"
)

// MissingReport counts missing cells per column over the whole dataset,
// both origins. Absent cells and present-but-non-finite numbers both count
// as missing. Excluded columns are skipped. Entries come back in
// presentation order: percentage descending, ties in original column order.
func MissingReport(ds *dataset.Dataset, cfg Config) report.MissingReport {
	total := ds.RowCount()

	entries := make(report.MissingReport, 0, len(ds.Columns))
	for _, col := range ds.Columns {
		if cfg.IsExcluded(col) {
			continue
		}

		count := 0
		for _, row := range ds.Rows {
			if isMissing(row, col) {
				count++
			}
		}

		percentage := 0.0
		if total > 0 {
			percentage = 100 * float64(count) / float64(total)
		}

		entries = append(entries, report.MissingEntry{
			Column:     col,
			Count:      count,
			Percentage: percentage,
		})
	}

	// Stable sort keeps original column order within equal percentages
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percentage > entries[j].Percentage
	})

	return entries
}

// isMissing treats absent cells and non-finite numeric cells as missing
func isMissing(row dataset.Row, col string) bool {
	if dataset.IsAbsent(row, col) {
		return true
	}
	if v, ok := dataset.NumberAt(row, col); ok {
		return math.IsNaN(v) || math.IsInf(v, 0)
	}
	return false
}
