package csvfile

import (
	"context"
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"goeda/domain/dataset"
	"goeda/internal/errors"
)

// Reader loads record batches from CSV files. The first row is the header;
// every later row becomes one record. Cells that parse as numbers come back
// as float64, empty cells as absent, everything else as text.
type Reader struct{}

// NewReader creates a CSV batch reader
func NewReader() *Reader {
	return &Reader{}
}

// ReadBatch reads the whole file into a record batch, preserving header
// order. Open and parse failures both surface as PARSE_FAILURE; the
// underlying cause stays attached for logs but callers only branch on the
// code.
func (r *Reader) ReadBatch(ctx context.Context, path string) (dataset.RecordBatch, error) {
	if err := ctx.Err(); err != nil {
		return dataset.RecordBatch{}, err
	}

	log.Printf("[CSVReader] Reading file: %s", path)

	file, err := os.Open(path)
	if err != nil {
		return dataset.RecordBatch{}, errors.ParseFailure(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; short rows read as absent cells

	records, err := reader.ReadAll()
	if err != nil {
		return dataset.RecordBatch{}, errors.ParseFailure(path, err)
	}
	if len(records) == 0 {
		// Headerless empty file: an empty batch, rejected later at merge
		return dataset.RecordBatch{}, nil
	}

	headers := make([]string, len(records[0]))
	for i, header := range records[0] {
		headers[i] = strings.TrimSpace(header)
	}

	rows := make([]dataset.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(dataset.Row, len(headers))
		for j, cell := range record {
			if j >= len(headers) {
				break
			}
			if value := parseCell(cell); value != nil {
				row[headers[j]] = value
			}
		}
		rows = append(rows, row)
	}

	log.Printf("[CSVReader] Read %d columns, %d rows from %s", len(headers), len(rows), path)

	return dataset.RecordBatch{Columns: headers, Rows: rows}, nil
}

// parseCell types one raw cell: nil for empty, float64 for numbers,
// trimmed text otherwise
func parseCell(cell string) interface{} {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	if number, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return number
	}
	return trimmed
}
