package testkit

import (
	"context"
	"sync"

	"goeda/domain/dataset"
	"goeda/domain/report"
	"goeda/internal/analysis"
	"goeda/internal/errors"
)

// TitanicTrainBatch returns the canonical three-passenger fixture's labeled
// half: two train passengers with known survival outcomes
func TitanicTrainBatch() dataset.RecordBatch {
	return dataset.RecordBatch{
		Columns: []string{"PassengerId", "Sex", "Age", "Survived"},
		Rows: []dataset.Row{
			{"PassengerId": 1.0, "Sex": "male", "Age": 22.0, "Survived": 0.0},
			{"PassengerId": 2.0, "Sex": "female", "Age": 38.0, "Survived": 1.0},
		},
	}
}

// TitanicTestBatch returns the fixture's unlabeled half
func TitanicTestBatch() dataset.RecordBatch {
	return dataset.RecordBatch{
		Columns: []string{"PassengerId", "Sex", "Age"},
		Rows: []dataset.Row{
			{"PassengerId": 3.0, "Sex": "male", "Age": 26.0},
		},
	}
}

// TitanicConfig returns the survival schema used by the fixtures
func TitanicConfig() analysis.Config {
	return analysis.Config{
		LabelColumn:     "Survived",
		ExcludedColumns: []string{"PassengerId"},
	}
}

// StaticReader serves pre-registered batches by path, standing in for the
// file-backed readers
type StaticReader struct {
	Batches map[string]dataset.RecordBatch
	Errors  map[string]error
}

// NewStaticReader creates a reader with no registered paths
func NewStaticReader() *StaticReader {
	return &StaticReader{
		Batches: make(map[string]dataset.RecordBatch),
		Errors:  make(map[string]error),
	}
}

// Register associates a batch with a path
func (r *StaticReader) Register(path string, batch dataset.RecordBatch) {
	r.Batches[path] = batch
}

// Fail makes reads of path return err
func (r *StaticReader) Fail(path string, err error) {
	r.Errors[path] = err
}

// ReadBatch serves the registered batch or failure for path
func (r *StaticReader) ReadBatch(ctx context.Context, path string) (dataset.RecordBatch, error) {
	if err := ctx.Err(); err != nil {
		return dataset.RecordBatch{}, err
	}
	if err, ok := r.Errors[path]; ok {
		return dataset.RecordBatch{}, err
	}
	batch, ok := r.Batches[path]
	if !ok {
		return dataset.RecordBatch{}, errors.ParseFailure(path, nil)
	}
	return batch, nil
}

// CaptureDatasetWriter records written datasets instead of persisting them
type CaptureDatasetWriter struct {
	mu       sync.Mutex
	Datasets map[string]*dataset.Dataset
	Err      error
}

// NewCaptureDatasetWriter creates an empty capture writer
func NewCaptureDatasetWriter() *CaptureDatasetWriter {
	return &CaptureDatasetWriter{Datasets: make(map[string]*dataset.Dataset)}
}

// WriteDataset records the dataset under path, or returns the configured
// failure
func (w *CaptureDatasetWriter) WriteDataset(ctx context.Context, ds *dataset.Dataset, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.Err != nil {
		return w.Err
	}
	w.Datasets[path] = ds
	return nil
}

// CaptureReportWriter records written report bundles
type CaptureReportWriter struct {
	mu      sync.Mutex
	Bundles map[string]*report.Bundle
	Err     error
}

// NewCaptureReportWriter creates an empty capture writer
func NewCaptureReportWriter() *CaptureReportWriter {
	return &CaptureReportWriter{Bundles: make(map[string]*report.Bundle)}
}

// WriteReport records the bundle under path, or returns the configured
// failure
func (w *CaptureReportWriter) WriteReport(ctx context.Context, bundle *report.Bundle, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.Err != nil {
		return w.Err
	}
	w.Bundles[path] = bundle
	return nil
}
