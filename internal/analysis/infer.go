package analysis

import (
	"goeda/domain/dataset"
)

// inferenceSampleLimit caps how many leading rows kind inference inspects
const inferenceSampleLimit = 100

// InferKinds classifies every dataset column as numeric or categorical from
// the first min(100, rowCount) rows. A column is numeric only when the
// sample holds at least one present value and every present value is a
// number; any non-numeric present value decides categorical immediately, and
// an all-absent sample is categorical (a vacuous numeric claim is rejected).
// The origin column is categorical by construction, not inference.
//
// Deterministic and pure: same dataset, same kinds.
func InferKinds(ds *dataset.Dataset) map[string]dataset.ColumnKind {
	sample := ds.SampleRows(inferenceSampleLimit)

	kinds := make(map[string]dataset.ColumnKind, len(ds.Columns))
	for _, col := range ds.Columns {
		if col == dataset.OriginColumn {
			kinds[col] = dataset.KindCategorical
			continue
		}
		kinds[col] = inferKind(sample, col)
	}
	return kinds
}

func inferKind(sample []dataset.Row, col string) dataset.ColumnKind {
	numericSeen := false
	for _, row := range sample {
		if dataset.IsAbsent(row, col) {
			continue
		}
		if _, ok := dataset.NumberAt(row, col); ok {
			numericSeen = true
			continue
		}
		// Short-circuit: one non-numeric present value decides
		return dataset.KindCategorical
	}

	if numericSeen {
		return dataset.KindNumeric
	}
	return dataset.KindCategorical
}
