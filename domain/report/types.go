package report

import (
	"goeda/domain/core"
	"goeda/domain/dataset"
)

// ===== Missing Values =====

// MissingEntry reports the absent-cell tally for one column
type MissingEntry struct {
	Column     string  `json:"column"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MissingReport is ordered for presentation: percentage descending,
// ties broken by original column order
type MissingReport []MissingEntry

// ===== Column Summaries =====

// NumericSummary describes the distribution of a numeric column.
// StdDev is the population standard deviation; quartiles and the median
// use the nearest-rank convention on the ascending-sorted values.
type NumericSummary struct {
	Count        int     `json:"count"`
	MissingCount int     `json:"missing_count"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Q1           float64 `json:"q1"`
	Q3           float64 `json:"q3"`
}

// ValueCount is one tallied categorical value
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalSummary describes a categorical column. TopValues is sorted by
// count descending, first-encountered tie-break, truncated to ten entries.
type CategoricalSummary struct {
	Count            int          `json:"count"`
	MissingCount     int          `json:"missing_count"`
	UniqueValueCount int          `json:"unique_value_count"`
	TopValues        []ValueCount `json:"top_values"`
}

// ColumnSummary carries exactly one of the two summary shapes
type ColumnSummary struct {
	Kind        dataset.ColumnKind  `json:"kind"`
	Numeric     *NumericSummary     `json:"numeric,omitempty"`
	Categorical *CategoricalSummary `json:"categorical,omitempty"`
}

// ===== Grouped by Label =====

// NumericGroupComparison compares a numeric column's mean between
// label-positive and label-negative train rows
type NumericGroupComparison struct {
	PositiveMean float64 `json:"positive_mean"`
	NegativeMean float64 `json:"negative_mean"`
	Difference   float64 `json:"difference"`
}

// CategoryLabelRate is one categorical value's label breakdown over
// train rows where both the value and the label are present
type CategoryLabelRate struct {
	Value         string  `json:"value"`
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
	PositiveRate  float64 `json:"positive_rate"`
}

// GroupedByLabel carries the label-conditioned view of one column.
// Categories is sorted by positive rate descending.
type GroupedByLabel struct {
	Numeric    *NumericGroupComparison `json:"numeric,omitempty"`
	Categories []CategoryLabelRate     `json:"categories,omitempty"`
}

// ===== Correlation =====

// CorrelationMatrix is a square Pearson matrix over the named columns.
// Values[i][j] == Values[j][i] exactly and the diagonal is 1.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Size returns the matrix dimension
func (m *CorrelationMatrix) Size() int {
	return len(m.Columns)
}

// At returns the coefficient for the (i, j) column pair
func (m *CorrelationMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// ===== Histograms =====

// Binning variants
const (
	VariantEqualWidth     = "equal_width"
	VariantEqualFrequency = "equal_frequency"
)

// Bin is one histogram interval [Lower, Upper); the last bin of a histogram
// is closed on both ends. PositiveRate is present only when label pairs were
// supplied and at least one labeled row fell into the bin.
type Bin struct {
	Lower        float64  `json:"lower"`
	Upper        float64  `json:"upper"`
	Count        int      `json:"count"`
	PositiveRate *float64 `json:"positive_rate,omitempty"`
}

// Histogram is the binned view of one numeric column
type Histogram struct {
	Column  string `json:"column"`
	Variant string `json:"variant"`
	Bins    []Bin  `json:"bins"`
}

// ===== Report Bundle =====

// Bundle is the full derived-report payload handed to exporters: every
// analysis result plus generation metadata. It is recomputed wholesale on
// each run and never mutated in place.
type Bundle struct {
	ReportID    core.ReportID                 `json:"report_id"`
	GeneratedAt core.Timestamp                `json:"generated_at"`
	TotalRows   int                           `json:"total_rows"`
	TrainRows   int                           `json:"train_rows"`
	TestRows    int                           `json:"test_rows"`
	LabelColumn string                        `json:"label_column"`
	ColumnKinds map[string]dataset.ColumnKind `json:"column_kinds"`
	Missing     MissingReport                 `json:"missing"`
	Summaries   map[string]ColumnSummary      `json:"summaries"`
	Grouped     map[string]GroupedByLabel     `json:"grouped_by_label,omitempty"`
	Correlation *CorrelationMatrix            `json:"correlation,omitempty"`
	Histograms  []Histogram                   `json:"histograms,omitempty"`
}
