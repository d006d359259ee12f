package export

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"goeda/domain/report"
	"goeda/internal/errors"
)

// JSONWriter persists report bundles as indented JSON, one file per report.
// The bundle marshals as-is: row counts, generation timestamp, and every
// analysis section.
type JSONWriter struct{}

// NewJSONWriter creates a JSON report writer
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// WriteReport marshals the bundle and writes it to path. Serialization and
// I/O failures both surface as EXPORT_FAILURE.
func (w *JSONWriter) WriteReport(ctx context.Context, bundle *report.Bundle, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if bundle == nil {
		return errors.InvalidInput("no report to write")
	}

	log.Printf("[JSONWriter] Writing report %s to %s", bundle.ReportID, path)

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return errors.ExportFailure(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ExportFailure(path, err)
	}

	return nil
}
