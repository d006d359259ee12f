package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"goeda/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestReader_ReadBatch(t *testing.T) {
	path := writeTempCSV(t, "PassengerId,Sex,Age,Survived\n1,male,22,0\n2,female,38,1\n")

	batch, err := NewReader().ReadBatch(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected read to succeed, got %v", err)
	}

	wantColumns := []string{"PassengerId", "Sex", "Age", "Survived"}
	if !reflect.DeepEqual(batch.Columns, wantColumns) {
		t.Errorf("Expected columns %v, got %v", wantColumns, batch.Columns)
	}
	if len(batch.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(batch.Rows))
	}

	// Numbers arrive typed, text stays text
	if age, ok := batch.Rows[0]["Age"].(float64); !ok || age != 22 {
		t.Errorf("Expected Age 22 as a number, got %v", batch.Rows[0]["Age"])
	}
	if sex, ok := batch.Rows[0]["Sex"].(string); !ok || sex != "male" {
		t.Errorf("Expected Sex as text, got %v", batch.Rows[0]["Sex"])
	}
}

func TestReader_EmptyCellsAreAbsent(t *testing.T) {
	path := writeTempCSV(t, "Age,Cabin\n22,\n,C85\n")

	batch, err := NewReader().ReadBatch(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected read to succeed, got %v", err)
	}

	if _, exists := batch.Rows[0]["Cabin"]; exists {
		t.Error("Expected empty cell to be absent from the row")
	}
	if _, exists := batch.Rows[1]["Age"]; exists {
		t.Error("Expected empty cell to be absent from the row")
	}
}

func TestReader_WhitespaceTrimmed(t *testing.T) {
	path := writeTempCSV(t, " Name , Age \n Smith , 40 \n   ,\n")

	batch, err := NewReader().ReadBatch(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected read to succeed, got %v", err)
	}

	if batch.Columns[0] != "Name" || batch.Columns[1] != "Age" {
		t.Errorf("Expected trimmed headers, got %v", batch.Columns)
	}
	if batch.Rows[0]["Name"] != "Smith" {
		t.Errorf("Expected trimmed text cell, got %v", batch.Rows[0]["Name"])
	}
	if _, exists := batch.Rows[1]["Name"]; exists {
		t.Error("Expected whitespace-only cell to be absent")
	}
}

func TestReader_RaggedRows(t *testing.T) {
	path := writeTempCSV(t, "A,B,C\n1,2\n1,2,3,4\n")

	batch, err := NewReader().ReadBatch(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected ragged rows to be tolerated, got %v", err)
	}

	if _, exists := batch.Rows[0]["C"]; exists {
		t.Error("Expected the short row's missing column to be absent")
	}
	if len(batch.Rows[1]) != 3 {
		t.Errorf("Expected the long row truncated to the header width, got %d cells", len(batch.Rows[1]))
	}
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader().ReadBatch(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if code := errors.GetCode(err); code != errors.CodeParseFailure {
		t.Errorf("Expected code %s, got %s", errors.CodeParseFailure, code)
	}
}

func TestReader_MalformedFile(t *testing.T) {
	path := writeTempCSV(t, "A,B\n\"unclosed,1\n")

	_, err := NewReader().ReadBatch(context.Background(), path)
	if err == nil {
		t.Fatal("Expected an error for malformed quoting")
	}
	if code := errors.GetCode(err); code != errors.CodeParseFailure {
		t.Errorf("Expected code %s, got %s", errors.CodeParseFailure, code)
	}
}

func TestReader_EmptyFileYieldsEmptyBatch(t *testing.T) {
	path := writeTempCSV(t, "")

	batch, err := NewReader().ReadBatch(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected an empty batch rather than an error, got %v", err)
	}
	if !batch.IsEmpty() {
		t.Error("Expected an empty batch")
	}
}
