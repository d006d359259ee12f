package app

import (
	"context"
	"time"

	"goeda/domain/core"
	"goeda/domain/dataset"
	"goeda/domain/report"
	"goeda/internal"
	"goeda/internal/analysis"
	"goeda/internal/errors"
	"goeda/internal/session"
	"goeda/ports"

	"golang.org/x/sync/errgroup"
)

// AnalysisService orchestrates one full pass: read both input files, merge,
// run every analysis, export, and publish the results to the session
type AnalysisService struct {
	reader         ports.BatchReader
	datasetWriter  ports.DatasetWriter
	reportWriter   ports.ReportWriter // structured bundle (JSON)
	documentWriter ports.ReportWriter // human-readable document (Markdown/HTML)
	engine         *analysis.Engine
	session        *session.Session
	logger         *internal.Logger
}

// NewAnalysisService wires the service from its collaborators
func NewAnalysisService(
	reader ports.BatchReader,
	datasetWriter ports.DatasetWriter,
	reportWriter ports.ReportWriter,
	documentWriter ports.ReportWriter,
	engine *analysis.Engine,
	sess *session.Session,
) *AnalysisService {
	return &AnalysisService{
		reader:         reader,
		datasetWriter:  datasetWriter,
		reportWriter:   reportWriter,
		documentWriter: documentWriter,
		engine:         engine,
		session:        sess,
		logger:         internal.NewDefaultLogger(),
	}
}

// AnalyzeRequest defines the inputs for a full analysis run. Export paths
// are optional; an empty path skips that export.
type AnalyzeRequest struct {
	TrainPath    string
	TestPath     string
	Options      analysis.Options
	DatasetPath  string // merged dataset as CSV
	ReportPath   string // report bundle as JSON
	DocumentPath string // report document as Markdown or HTML
}

// AnalyzeResult contains the run's outcome. ExportWarnings carries any
// export failures: the analysis itself succeeded, so they surface as
// messages rather than aborting the run.
type AnalyzeResult struct {
	ReportID       core.ReportID  `json:"report_id"`
	TotalRows      int            `json:"total_rows"`
	TrainRows      int            `json:"train_rows"`
	TestRows       int            `json:"test_rows"`
	Bundle         *report.Bundle `json:"bundle,omitempty"`
	ExportWarnings []string       `json:"export_warnings,omitempty"`
	RuntimeMs      int64          `json:"runtime_ms"`
}

// Analyze executes the full pipeline for one train/test file pair
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	startTime := time.Now()
	s.logger.Info("Starting analysis: train=%s test=%s", req.TrainPath, req.TestPath)

	s.session.SetPhase(session.PhaseLoading)
	train, test, err := s.readBatches(ctx, req.TrainPath, req.TestPath)
	if err != nil {
		s.session.SetError(err.Error())
		return nil, err
	}

	ds, err := dataset.Merge(train, test)
	if err != nil {
		s.session.SetError(err.Error())
		return nil, err
	}
	s.session.SetDataset(ds)

	s.session.SetPhase(session.PhaseAnalyzing)
	bundle, err := s.engine.Run(ds, req.Options)
	if err != nil {
		s.session.SetError(err.Error())
		return nil, err
	}

	warnings := s.export(ctx, ds, bundle, req)
	s.session.SetResults(ds, bundle)

	result := &AnalyzeResult{
		ReportID:       bundle.ReportID,
		TotalRows:      bundle.TotalRows,
		TrainRows:      bundle.TrainRows,
		TestRows:       bundle.TestRows,
		Bundle:         bundle,
		ExportWarnings: warnings,
		RuntimeMs:      time.Since(startTime).Milliseconds(),
	}

	s.logger.Info("Analysis complete: %d rows (%d train, %d test) in %.2fs",
		bundle.TotalRows, bundle.TrainRows, bundle.TestRows, time.Since(startTime).Seconds())
	return result, nil
}

// MergeRequest defines the inputs for a merge-only run
type MergeRequest struct {
	TrainPath  string
	TestPath   string
	OutputPath string
}

// MergeResult contains the merged dataset's shape
type MergeResult struct {
	Rows      int      `json:"rows"`
	Columns   []string `json:"columns"`
	RuntimeMs int64    `json:"runtime_ms"`
}

// Merge reads both inputs and writes the combined dataset without running
// any analysis. Here the export is the whole point, so a write failure
// fails the operation.
func (s *AnalysisService) Merge(ctx context.Context, req MergeRequest) (*MergeResult, error) {
	startTime := time.Now()
	s.logger.Info("Starting merge: train=%s test=%s", req.TrainPath, req.TestPath)

	s.session.SetPhase(session.PhaseLoading)
	train, test, err := s.readBatches(ctx, req.TrainPath, req.TestPath)
	if err != nil {
		s.session.SetError(err.Error())
		return nil, err
	}

	ds, err := dataset.Merge(train, test)
	if err != nil {
		s.session.SetError(err.Error())
		return nil, err
	}

	if err := s.datasetWriter.WriteDataset(ctx, ds, req.OutputPath); err != nil {
		s.session.SetError(err.Error())
		return nil, err
	}

	s.session.SetDataset(ds)
	s.session.SetPhase(session.PhaseComplete)

	s.logger.Info("Merge complete: %d rows to %s", ds.RowCount(), req.OutputPath)
	return &MergeResult{
		Rows:      ds.RowCount(),
		Columns:   ds.Columns,
		RuntimeMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// readBatches loads the two input files concurrently; the first failure
// cancels the other read
func (s *AnalysisService) readBatches(ctx context.Context, trainPath, testPath string) (train, test dataset.RecordBatch, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		batch, readErr := s.reader.ReadBatch(gctx, trainPath)
		if readErr != nil {
			return errors.Wrapf(readErr, "failed to load train batch from %s", trainPath)
		}
		train = batch
		return nil
	})
	g.Go(func() error {
		batch, readErr := s.reader.ReadBatch(gctx, testPath)
		if readErr != nil {
			return errors.Wrapf(readErr, "failed to load test batch from %s", testPath)
		}
		test = batch
		return nil
	})

	if err := g.Wait(); err != nil {
		return dataset.RecordBatch{}, dataset.RecordBatch{}, err
	}
	return train, test, nil
}

// export writes the requested artifacts, collecting failures as warnings
func (s *AnalysisService) export(ctx context.Context, ds *dataset.Dataset, bundle *report.Bundle, req AnalyzeRequest) []string {
	var warnings []string

	if req.DatasetPath != "" {
		if err := s.datasetWriter.WriteDataset(ctx, ds, req.DatasetPath); err != nil {
			s.logger.Warn("Dataset export failed: %v", err)
			warnings = append(warnings, err.Error())
		}
	}
	if req.ReportPath != "" {
		if err := s.reportWriter.WriteReport(ctx, bundle, req.ReportPath); err != nil {
			s.logger.Warn("Report export failed: %v", err)
			warnings = append(warnings, err.Error())
		}
	}
	if req.DocumentPath != "" {
		if err := s.documentWriter.WriteReport(ctx, bundle, req.DocumentPath); err != nil {
			s.logger.Warn("Document export failed: %v", err)
			warnings = append(warnings, err.Error())
		}
	}

	return warnings
}
