package analysis

import (
	"math"

	"goeda/domain/core"
	"goeda/domain/dataset"
	"goeda/domain/report"
	"goeda/internal/errors"
)

// Options carries the per-run knobs that sit outside the static column
// configuration
type Options struct {
	// BinCount fixes the histogram bin count; 0 means a Sturges-style
	// count derived from each column's valid value count
	BinCount int

	// QuantileColumns names numeric columns binned equal-frequency instead
	// of equal-width (fare-style percentile binning)
	QuantileColumns []string
}

// Engine runs every analysis pass over a dataset snapshot. It holds only
// the static configuration: every Run call receives the full dataset it
// needs and returns a fresh bundle, so calls are reentrant and two runs on
// the same dataset yield identical results.
type Engine struct {
	cfg Config
}

// NewEngine creates an analysis engine for one schema configuration
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Run executes type inference and all derived analyses, returning the full
// report bundle. Only a structurally unusable dataset is an error; missing
// data inside a valid dataset degrades to omissions and zeros per the
// analyzer contracts.
func (e *Engine) Run(ds *dataset.Dataset, opts Options) (*report.Bundle, error) {
	if ds == nil || ds.RowCount() == 0 {
		return nil, errors.InvalidInput("analysis requires a merged dataset with rows")
	}

	kinds := InferKinds(ds)
	features := e.featureColumns(ds)
	numericFeatures := filterNumeric(features, kinds)

	train, test := ds.OriginCounts()

	bundle := &report.Bundle{
		ReportID:    core.ReportID(core.NewID()),
		GeneratedAt: core.Now(),
		TotalRows:   ds.RowCount(),
		TrainRows:   train,
		TestRows:    test,
		LabelColumn: e.cfg.LabelColumn,
		ColumnKinds: kinds,
		Missing:     MissingReport(ds, e.cfg),
		Summaries:   Summarize(ds, kinds, e.cfg),
		Grouped:     GroupByLabel(ds, kinds, e.cfg),
	}

	if len(numericFeatures) > 0 {
		bundle.Correlation = Correlate(ds, numericFeatures, e.cfg.LabelColumn)
	}

	bundle.Histograms = e.histograms(ds, numericFeatures, opts)

	return bundle, nil
}

// featureColumns resolves the effective ordered feature list: the
// configured columns that exist in the dataset, or every non-excluded
// dataset column when none were configured
func (e *Engine) featureColumns(ds *dataset.Dataset) []string {
	if len(e.cfg.FeatureColumns) > 0 {
		var features []string
		for _, col := range e.cfg.FeatureColumns {
			if ds.HasColumn(col) && !e.cfg.IsExcluded(col) {
				features = append(features, col)
			}
		}
		return features
	}

	var features []string
	for _, col := range ds.Columns {
		if !e.cfg.IsExcluded(col) {
			features = append(features, col)
		}
	}
	return features
}

func filterNumeric(columns []string, kinds map[string]dataset.ColumnKind) []string {
	var numeric []string
	for _, col := range columns {
		if kinds[col] == dataset.KindNumeric {
			numeric = append(numeric, col)
		}
	}
	return numeric
}

// histograms bins each numeric feature column except the label itself.
// Values come from every row; label rates come from the aligned label cells,
// which are absent outside the train split and therefore excluded.
func (e *Engine) histograms(ds *dataset.Dataset, numericFeatures []string, opts Options) []report.Histogram {
	var histograms []report.Histogram

	hasLabel := ds.HasColumn(e.cfg.LabelColumn)

	for _, col := range numericFeatures {
		if col == e.cfg.LabelColumn {
			continue
		}

		values, labels := alignedColumn(ds, col, e.cfg.LabelColumn, hasLabel)
		if len(values) == 0 {
			continue
		}

		binCount := opts.BinCount
		if binCount <= 0 {
			binCount = SturgesBinCount(len(values))
		}

		variant := report.VariantEqualWidth
		var bins []report.Bin
		if containsColumn(opts.QuantileColumns, col) {
			variant = report.VariantEqualFrequency
			bins = QuantileBinsWithLabel(values, labels, binCount)
		} else {
			bins = HistogramWithLabel(values, labels, binCount)
		}

		histograms = append(histograms, report.Histogram{
			Column:  col,
			Variant: variant,
			Bins:    bins,
		})
	}

	return histograms
}

// alignedColumn extracts the column's valid values with a parallel label
// sequence; rows without a usable label get NaN so binning excludes them
// from rates
func alignedColumn(ds *dataset.Dataset, col, labelColumn string, hasLabel bool) (values, labels []float64) {
	for _, row := range ds.Rows {
		v, ok := finiteNumberAt(row, col)
		if !ok {
			continue
		}
		values = append(values, v)

		if !hasLabel {
			continue
		}
		if label, ok := finiteNumberAt(row, labelColumn); ok {
			labels = append(labels, label)
		} else {
			labels = append(labels, math.NaN())
		}
	}
	if !hasLabel {
		return values, nil
	}
	return values, labels
}

func containsColumn(columns []string, col string) bool {
	for _, c := range columns {
		if c == col {
			return true
		}
	}
	return false
}
