package excel

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"goeda/internal/errors"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, headers []string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := "Sheet1"

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatalf("Failed to set header cell: %v", err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("Failed to set data cell: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "batch.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	return path
}

func TestReader_ReadBatch(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"PassengerId", "Sex", "Age"},
		[][]interface{}{
			{1, "male", 22},
			{2, "female", 38},
		},
	)

	batch, err := NewReader().ReadBatch(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected read to succeed, got %v", err)
	}

	wantColumns := []string{"PassengerId", "Sex", "Age"}
	if !reflect.DeepEqual(batch.Columns, wantColumns) {
		t.Errorf("Expected columns %v, got %v", wantColumns, batch.Columns)
	}
	if len(batch.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(batch.Rows))
	}

	if age, ok := batch.Rows[0]["Age"].(float64); !ok || age != 22 {
		t.Errorf("Expected Age 22 as a number, got %v", batch.Rows[0]["Age"])
	}
	if sex, ok := batch.Rows[1]["Sex"].(string); !ok || sex != "female" {
		t.Errorf("Expected Sex as text, got %v", batch.Rows[1]["Sex"])
	}
}

func TestReader_EmptyCellsAreAbsent(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"Age", "Cabin"},
		[][]interface{}{
			{22, nil},
			{nil, "C85"},
		},
	)

	batch, err := NewReader().ReadBatch(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected read to succeed, got %v", err)
	}

	if _, exists := batch.Rows[0]["Cabin"]; exists {
		t.Error("Expected the empty cell to be absent")
	}
	if _, exists := batch.Rows[1]["Age"]; exists {
		t.Error("Expected the empty cell to be absent")
	}
	if batch.Rows[1]["Cabin"] != "C85" {
		t.Errorf("Expected C85, got %v", batch.Rows[1]["Cabin"])
	}
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader().ReadBatch(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if code := errors.GetCode(err); code != errors.CodeParseFailure {
		t.Errorf("Expected code %s, got %s", errors.CodeParseFailure, code)
	}
}

func TestReader_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	_, err := NewReader().ReadBatch(context.Background(), path)
	if err == nil {
		t.Fatal("Expected an error for a corrupt workbook")
	}
	if code := errors.GetCode(err); code != errors.CodeParseFailure {
		t.Errorf("Expected code %s, got %s", errors.CodeParseFailure, code)
	}
}
