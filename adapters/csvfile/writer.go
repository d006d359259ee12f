package csvfile

import (
	"context"
	"encoding/csv"
	"log"
	"os"

	"goeda/domain/dataset"
	"goeda/internal/errors"
)

// Writer persists a merged dataset as RFC 4180 CSV: one header row in
// dataset column order (origin last), absent cells as empty fields, numbers
// rendered without a trailing .0
type Writer struct{}

// NewWriter creates a CSV dataset writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteDataset writes the dataset to path, creating or truncating the file.
// Any I/O failure surfaces as EXPORT_FAILURE; nothing partial is retried.
func (w *Writer) WriteDataset(ctx context.Context, ds *dataset.Dataset, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ds == nil {
		return errors.InvalidInput("no dataset to write")
	}

	log.Printf("[CSVWriter] Writing %d rows to %s", ds.RowCount(), path)

	file, err := os.Create(path)
	if err != nil {
		return errors.ExportFailure(path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(ds.Columns); err != nil {
		return errors.ExportFailure(path, err)
	}

	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, col := range ds.Columns {
			if dataset.IsAbsent(row, col) {
				record[i] = ""
				continue
			}
			record[i] = dataset.Stringify(row[col])
		}
		if err := writer.Write(record); err != nil {
			return errors.ExportFailure(path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.ExportFailure(path, err)
	}

	log.Printf("[CSVWriter] Wrote %s", path)
	return nil
}
