package session

import (
	"sync"

	"goeda/domain/core"
	"goeda/domain/dataset"
	"goeda/domain/report"
)

// Phase represents where a session is in the load-analyze cycle
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhaseAnalyzing Phase = "analyzing"
	PhaseComplete  Phase = "complete"
	PhaseError     Phase = "error"
)

// Session holds the current dataset and its derived report between runs.
// The analysis core never sees this type: it belongs to the outer layer,
// and every run replaces the contents wholesale instead of mutating them.
type Session struct {
	ID        core.SessionID
	StartedAt core.Timestamp

	mu        sync.RWMutex
	phase     Phase
	dataset   *dataset.Dataset
	bundle    *report.Bundle
	lastError string
	updatedAt core.Timestamp
}

// New creates an idle session with a fresh identifier
func New() *Session {
	return &Session{
		ID:        core.SessionID(core.NewID()),
		StartedAt: core.Now(),
		phase:     PhaseIdle,
		updatedAt: core.Now(),
	}
}

// SetPhase moves the session to a new phase
func (s *Session) SetPhase(phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = phase
	s.updatedAt = core.Now()
}

// SetDataset replaces the current dataset. Any previous report is dropped:
// a report only ever describes the dataset it was computed from.
func (s *Session) SetDataset(ds *dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = ds
	s.bundle = nil
	s.updatedAt = core.Now()
}

// SetResults installs a dataset with its freshly computed report and marks
// the session complete
func (s *Session) SetResults(ds *dataset.Dataset, bundle *report.Bundle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = ds
	s.bundle = bundle
	s.phase = PhaseComplete
	s.lastError = ""
	s.updatedAt = core.Now()
}

// SetError records a failure message and moves the session to the error
// phase; the previous dataset and report stay readable
func (s *Session) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = PhaseError
	s.lastError = message
	s.updatedAt = core.Now()
}

// Phase returns the current phase
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Dataset returns the current dataset, nil before the first load
func (s *Session) Dataset() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Report returns the current report bundle, nil until a run completes
func (s *Session) Report() *report.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle
}

// LastError returns the most recent failure message, empty when healthy
func (s *Session) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// Status returns a snapshot of the session for display
func (s *Session) Status() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := map[string]interface{}{
		"id":         s.ID.String(),
		"phase":      s.phase,
		"started_at": s.StartedAt,
		"updated_at": s.updatedAt,
		"has_data":   s.dataset != nil,
		"has_report": s.bundle != nil,
	}
	if s.dataset != nil {
		status["rows"] = s.dataset.RowCount()
		status["columns"] = s.dataset.ColumnCount()
	}
	if s.lastError != "" {
		status["error"] = s.lastError
	}
	return status
}
