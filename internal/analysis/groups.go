package analysis

import (
	"sort"

	"goeda/domain/dataset"
	"goeda/domain/report"
)

// GroupByLabel computes label-conditioned views over train-origin rows.
// A row contributes only when both the column value and the label are
// present and the label is numeric; label 1 is positive, 0 negative, and
// anything else is excluded from the tally rather than treated as negative.
//
// Returns nil when the dataset does not carry the label column at all.
// The label column itself and the origin column are never grouped: the
// first against itself is meaningless and the second is single-valued over
// the train split.
func GroupByLabel(ds *dataset.Dataset, kinds map[string]dataset.ColumnKind, cfg Config) map[string]report.GroupedByLabel {
	if !ds.HasColumn(cfg.LabelColumn) {
		return nil
	}

	trainRows := ds.RowsByOrigin(dataset.OriginTrain)

	grouped := make(map[string]report.GroupedByLabel)
	for _, col := range ds.Columns {
		if cfg.IsExcluded(col) || col == cfg.LabelColumn || col == dataset.OriginColumn {
			continue
		}

		switch kinds[col] {
		case dataset.KindNumeric:
			if comparison, ok := numericGroupComparison(trainRows, col, cfg.LabelColumn); ok {
				grouped[col] = report.GroupedByLabel{Numeric: &comparison}
			}
		default:
			if categories := categoryLabelRates(trainRows, col, cfg.LabelColumn); len(categories) > 0 {
				grouped[col] = report.GroupedByLabel{Categories: categories}
			}
		}
	}

	return grouped
}

// numericGroupComparison compares means between the positive and negative
// label groups. Omitted (false) when either group has zero values, so the
// result never carries NaN means.
func numericGroupComparison(trainRows []dataset.Row, col, labelColumn string) (report.NumericGroupComparison, bool) {
	var positive, negative []float64
	for _, row := range trainRows {
		value, ok := finiteNumberAt(row, col)
		if !ok {
			continue
		}
		switch label, ok := finiteNumberAt(row, labelColumn); {
		case !ok:
		case label == 1:
			positive = append(positive, value)
		case label == 0:
			negative = append(negative, value)
		}
	}

	if len(positive) == 0 || len(negative) == 0 {
		return report.NumericGroupComparison{}, false
	}

	positiveMean := meanOf(positive)
	negativeMean := meanOf(negative)
	return report.NumericGroupComparison{
		PositiveMean: positiveMean,
		NegativeMean: negativeMean,
		Difference:   positiveMean - negativeMean,
	}, true
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// categoryLabelRates tallies each categorical value's positive/negative
// counts and orders by positive rate descending, keeping first-encountered
// order within ties
func categoryLabelRates(trainRows []dataset.Row, col, labelColumn string) []report.CategoryLabelRate {
	type tally struct {
		positive int
		negative int
	}
	tallies := make(map[string]*tally)
	var firstSeen []string

	for _, row := range trainRows {
		if dataset.IsAbsent(row, col) {
			continue
		}
		label, ok := finiteNumberAt(row, labelColumn)
		if !ok || (label != 0 && label != 1) {
			continue
		}

		value := dataset.Stringify(row[col])
		entry, exists := tallies[value]
		if !exists {
			entry = &tally{}
			tallies[value] = entry
			firstSeen = append(firstSeen, value)
		}
		if label == 1 {
			entry.positive++
		} else {
			entry.negative++
		}
	}

	categories := make([]report.CategoryLabelRate, 0, len(firstSeen))
	for _, value := range firstSeen {
		entry := tallies[value]
		total := entry.positive + entry.negative
		categories = append(categories, report.CategoryLabelRate{
			Value:         value,
			PositiveCount: entry.positive,
			NegativeCount: entry.negative,
			PositiveRate:  float64(entry.positive) / float64(total),
		})
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].PositiveRate > categories[j].PositiveRate
	})

	return categories
}
