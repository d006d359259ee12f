package excel

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"goeda/domain/dataset"
	"goeda/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Reader loads record batches from Excel workbooks. Only the first sheet is
// read; the first row is the header. Cells follow the same typing as the
// CSV reader: numbers as float64, empty as absent, everything else as text.
type Reader struct{}

// NewReader creates an Excel batch reader
func NewReader() *Reader {
	return &Reader{}
}

// ReadBatch reads the workbook's first sheet into a record batch. Open and
// structural failures surface as PARSE_FAILURE.
func (r *Reader) ReadBatch(ctx context.Context, path string) (dataset.RecordBatch, error) {
	if err := ctx.Err(); err != nil {
		return dataset.RecordBatch{}, err
	}

	log.Printf("[ExcelReader] Reading workbook: %s", path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataset.RecordBatch{}, errors.ParseFailure(path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataset.RecordBatch{}, errors.ParseFailure(path, fmt.Errorf("workbook has no sheets"))
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return dataset.RecordBatch{}, errors.ParseFailure(path, err)
	}
	if len(records) == 0 {
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

	log.Printf("[ExcelReader] Read %d columns, %d rows from sheet %s", len(headers), len(rows), sheets[0])

	return dataset.RecordBatch{Columns: headers, Rows: rows}, nil
}

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
