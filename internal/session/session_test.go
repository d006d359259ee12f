package session

import (
	"fmt"
	"sync"
	"testing"

	"goeda/domain/dataset"
	"goeda/domain/report"
)

func TestSession_StartsIdle(t *testing.T) {
	s := New()

	if s.Phase() != PhaseIdle {
		t.Errorf("Expected idle phase, got %s", s.Phase())
	}
	if s.ID.String() == "" {
		t.Error("Expected a session ID")
	}
	if s.Dataset() != nil || s.Report() != nil {
		t.Error("Expected no dataset or report before the first run")
	}
}

func TestSession_SetResults(t *testing.T) {
	s := New()
	ds := &dataset.Dataset{Columns: []string{"Age", dataset.OriginColumn}, Rows: []dataset.Row{{"Age": 22.0}}}
	bundle := &report.Bundle{TotalRows: 1}

	s.SetPhase(PhaseAnalyzing)
	s.SetResults(ds, bundle)

	if s.Phase() != PhaseComplete {
		t.Errorf("Expected complete phase, got %s", s.Phase())
	}
	if s.Dataset() != ds {
		t.Error("Expected the installed dataset")
	}
	if s.Report() != bundle {
		t.Error("Expected the installed report")
	}
}

func TestSession_SetDatasetDropsStaleReport(t *testing.T) {
	s := New()
	s.SetResults(&dataset.Dataset{}, &report.Bundle{})

	s.SetDataset(&dataset.Dataset{})

	if s.Report() != nil {
		t.Error("Expected the stale report dropped with the new dataset")
	}
}

func TestSession_SetError(t *testing.T) {
	s := New()
	ds := &dataset.Dataset{}
	s.SetResults(ds, &report.Bundle{})

	s.SetError("failed to parse train.csv")

	if s.Phase() != PhaseError {
		t.Errorf("Expected error phase, got %s", s.Phase())
	}
	if s.LastError() != "failed to parse train.csv" {
		t.Errorf("Expected the failure message, got %q", s.LastError())
	}
	if s.Dataset() != ds {
		t.Error("Expected the previous dataset to stay readable")
	}

	// A later successful run clears the failure
	s.SetResults(ds, &report.Bundle{})
	if s.LastError() != "" {
		t.Errorf("Expected the error cleared, got %q", s.LastError())
	}
}

func TestSession_Status(t *testing.T) {
	s := New()
	ds := &dataset.Dataset{
		Columns: []string{"Age", dataset.OriginColumn},
		Rows:    []dataset.Row{{"Age": 22.0}, {"Age": 38.0}},
	}
	s.SetResults(ds, &report.Bundle{})

	status := s.Status()

	if status["phase"] != PhaseComplete {
		t.Errorf("Expected complete phase in status, got %v", status["phase"])
	}
	if status["rows"] != 2 || status["columns"] != 2 {
		t.Errorf("Expected 2 rows and 2 columns, got %v and %v", status["rows"], status["columns"])
	}
	if status["has_report"] != true {
		t.Error("Expected has_report true")
	}
	if _, exists := status["error"]; exists {
		t.Error("Expected no error key on a healthy session")
	}
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.SetResults(&dataset.Dataset{}, &report.Bundle{})
			s.SetError(fmt.Sprintf("error %d", n))
		}(i)
	}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Phase()
				_ = s.Status()
				_ = s.Report()
			}
		}()
	}

	wg.Wait()
	// Passing means no data races or deadlocks under -race
}
