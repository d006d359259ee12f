package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"goeda/adapters/csvfile"
	"goeda/adapters/excel"
	"goeda/adapters/export"
	"goeda/app"
	"goeda/domain/dataset"
	"goeda/internal/analysis"
	"goeda/internal/config"
	"goeda/internal/session"
	"goeda/internal/testkit"
	"goeda/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "goeda",
		Short: "Exploratory analysis for train/test tabular datasets",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newMergeCmd(),
		newGenerateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var outputDir string
	var binCount int
	var quantileColumns string
	var htmlDocument bool

	cmd := &cobra.Command{
		Use:   "analyze [train-file] [test-file]",
		Short: "Run the full analysis over a train/test file pair",
		Long: `Read both input files (CSV or XLSX by extension), merge them into one
origin-tagged dataset, and run every analysis: column kind inference,
missing values, summaries, label grouping, correlation, and histograms.

Schema configuration (LABEL_COLUMN, FEATURE_COLUMNS, EXCLUDED_COLUMNS, ...)
is read from the environment or a .env file. Positional paths override
TRAIN_FILE and TEST_FILE.

Example: goeda analyze train.csv test.csv --output-dir output --bin-count 8`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			trainPath, testPath := resolveInputPaths(cfg, args)
			if outputDir == "" {
				outputDir = cfg.Output.Dir
			}

			opts := cfg.RunOptions()
			if binCount > 0 {
				opts.BinCount = binCount
			}
			if quantileColumns != "" {
				opts.QuantileColumns = splitColumnList(quantileColumns)
			}

			return runAnalyze(cmd.Context(), cfg, trainPath, testPath, outputDir, opts, htmlDocument)
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for exported artifacts (default from OUTPUT_DIR)")
	cmd.Flags().IntVar(&binCount, "bin-count", 0, "Histogram bin count (0 = per-column Sturges)")
	cmd.Flags().StringVar(&quantileColumns, "quantile-columns", "", "Comma-separated columns binned by equal frequency")
	cmd.Flags().BoolVar(&htmlDocument, "html", false, "Export the report document as HTML instead of Markdown")

	return cmd
}

func newMergeCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "merge [train-file] [test-file]",
		Short: "Merge a train/test file pair without analyzing it",
		Long: `Read both input files and write the combined origin-tagged dataset as
CSV. No statistics are computed.

Example: goeda merge train.csv test.xlsx --output merged.csv`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			trainPath, testPath := resolveInputPaths(cfg, args)
			if outputFile == "" {
				outputFile = filepath.Join(cfg.Output.Dir, "merged.csv")
			}

			return runMerge(cmd.Context(), cfg, trainPath, testPath, outputFile)
		},
	}

	cmd.Flags().StringVar(&outputFile, "output", "", "Path for the merged CSV (default <OUTPUT_DIR>/merged.csv)")

	return cmd
}

func newGenerateCmd() *cobra.Command {
	var trainRows int
	var testRows int
	var seed int64
	var outputDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic passenger train/test pair",
		Long: `Write a deterministic synthetic passenger manifest as train.csv and
test.csv, useful for trying the analyzer without real data.

Example: goeda generate --train-rows 891 --test-rows 418 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), trainRows, testRows, seed, outputDir)
		},
	}

	cmd.Flags().IntVar(&trainRows, "train-rows", 891, "Labeled rows to generate")
	cmd.Flags().IntVar(&testRows, "test-rows", 418, "Unlabeled rows to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic operations")
	cmd.Flags().StringVar(&outputDir, "output-dir", "output", "Directory for the generated files")

	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config, trainPath, testPath, outputDir string, opts analysis.Options, htmlDocument bool) error {
	fmt.Printf("Analyzing %s + %s...\n", trainPath, testPath)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	documentName := "report.md"
	if htmlDocument {
		documentName = "report.html"
	}

	svc := newService(cfg)
	result, err := svc.Analyze(ctx, app.AnalyzeRequest{
		TrainPath:    trainPath,
		TestPath:     testPath,
		Options:      opts,
		DatasetPath:  filepath.Join(outputDir, "merged.csv"),
		ReportPath:   filepath.Join(outputDir, "report.json"),
		DocumentPath: filepath.Join(outputDir, documentName),
	})
	if err != nil {
		return err
	}

	bundle := result.Bundle
	numericCount, categoricalCount := countKinds(bundle.ColumnKinds)

	fmt.Printf("\n=== DATASET ===\n")
	fmt.Printf("Report ID: %s\n", result.ReportID)
	fmt.Printf("Rows: %d (%d train, %d test)\n", result.TotalRows, result.TrainRows, result.TestRows)
	fmt.Printf("Columns: %d (%d numeric, %d categorical)\n", len(bundle.ColumnKinds), numericCount, categoricalCount)
	if bundle.LabelColumn != "" {
		fmt.Printf("Label: %s\n", bundle.LabelColumn)
	}

	if len(bundle.Missing) > 0 {
		fmt.Printf("\n=== MISSING VALUES ===\n")
		for i, entry := range bundle.Missing {
			if i == 5 {
				fmt.Printf("... and %d more columns\n", len(bundle.Missing)-5)
				break
			}
			fmt.Printf("%s: %d (%.1f%%)\n", entry.Column, entry.Count, entry.Percentage)
		}
	}

	fmt.Printf("\n=== EXPORTS ===\n")
	fmt.Printf("💾 %s\n", filepath.Join(outputDir, "merged.csv"))
	fmt.Printf("💾 %s\n", filepath.Join(outputDir, "report.json"))
	fmt.Printf("💾 %s\n", filepath.Join(outputDir, documentName))
	for _, warning := range result.ExportWarnings {
		fmt.Printf("⚠️  %s\n", warning)
	}

	fmt.Printf("\n✅ ANALYSIS COMPLETED in %dms\n", result.RuntimeMs)
	return nil
}

func runMerge(ctx context.Context, cfg *config.Config, trainPath, testPath, outputFile string) error {
	fmt.Printf("Merging %s + %s...\n", trainPath, testPath)

	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	svc := newService(cfg)
	result, err := svc.Merge(ctx, app.MergeRequest{
		TrainPath:  trainPath,
		TestPath:   testPath,
		OutputPath: outputFile,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n💾 %s\n", outputFile)
	fmt.Printf("✅ MERGE COMPLETED: %d rows, %d columns in %dms\n", result.Rows, len(result.Columns), result.RuntimeMs)
	return nil
}

func runGenerate(ctx context.Context, trainRows, testRows int, seed int64, outputDir string) error {
	fmt.Printf("Generating %d train + %d test passengers (seed %d)...\n", trainRows, testRows, seed)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	genConfig := testkit.DefaultGeneratorConfig()
	genConfig.TrainRows = trainRows
	genConfig.TestRows = testRows
	genConfig.Seed = seed

	train, test := testkit.NewPassengerGenerator(genConfig).Generate()

	writer := csvfile.NewWriter()
	trainPath := filepath.Join(outputDir, "train.csv")
	testPath := filepath.Join(outputDir, "test.csv")

	if err := writer.WriteDataset(ctx, &dataset.Dataset{Columns: train.Columns, Rows: train.Rows}, trainPath); err != nil {
		return err
	}
	if err := writer.WriteDataset(ctx, &dataset.Dataset{Columns: test.Columns, Rows: test.Rows}, testPath); err != nil {
		return err
	}

	fmt.Printf("\n💾 %s (%d rows)\n", trainPath, len(train.Rows))
	fmt.Printf("💾 %s (%d rows)\n", testPath, len(test.Rows))
	fmt.Printf("✅ GENERATION COMPLETED\n")
	return nil
}

// newService assembles the application service with file-backed adapters
func newService(cfg *config.Config) *app.AnalysisService {
	reader := &formatReader{
		csv:   csvfile.NewReader(),
		excel: excel.NewReader(),
	}

	return app.NewAnalysisService(
		reader,
		csvfile.NewWriter(),
		export.NewJSONWriter(),
		export.NewMarkdownWriter(),
		analysis.NewEngine(cfg.AnalysisConfig()),
		session.New(),
	)
}

// formatReader picks the ingestion adapter by file extension, so a CSV
// train file can be paired with an XLSX test file
type formatReader struct {
	csv   ports.BatchReader
	excel ports.BatchReader
}

func (r *formatReader) ReadBatch(ctx context.Context, path string) (dataset.RecordBatch, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return r.excel.ReadBatch(ctx, path)
	default:
		return r.csv.ReadBatch(ctx, path)
	}
}

// resolveInputPaths applies positional overrides on top of the configured
// TRAIN_FILE and TEST_FILE paths
func resolveInputPaths(cfg *config.Config, args []string) (trainPath, testPath string) {
	trainPath = cfg.Paths.TrainFile
	testPath = cfg.Paths.TestFile
	if len(args) > 0 {
		trainPath = args[0]
	}
	if len(args) > 1 {
		testPath = args[1]
	}
	return trainPath, testPath
}

// splitColumnList parses a comma-separated column list, dropping empties
func splitColumnList(raw string) []string {
	parts := strings.Split(raw, ",")
	columns := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			columns = append(columns, trimmed)
		}
	}
	return columns
}

func countKinds(kinds map[string]dataset.ColumnKind) (numeric, categorical int) {
	for _, kind := range kinds {
		if kind == dataset.KindNumeric {
			numeric++
		} else {
			categorical++
		}
	}
	return numeric, categorical
}
