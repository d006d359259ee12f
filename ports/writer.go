package ports

import (
	"context"

	"goeda/domain/dataset"
	"goeda/domain/report"
)

// DatasetWriter persists a merged dataset to an external sink, keeping the
// dataset's column order including the trailing origin column
type DatasetWriter interface {
	WriteDataset(ctx context.Context, ds *dataset.Dataset, path string) error
}

// ReportWriter persists a report bundle to an external sink. The format is
// the implementation's concern; the bundle is the single source of truth
// and writers never recompute analysis results.
type ReportWriter interface {
	WriteReport(ctx context.Context, bundle *report.Bundle, path string) error
}
