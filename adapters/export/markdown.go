package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"goeda/domain/dataset"
	"goeda/domain/report"
	"goeda/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownWriter renders a report bundle as a Markdown document. Targets
// ending in .html are rendered through the Markdown pipeline into a
// standalone HTML page instead.
type MarkdownWriter struct{}

// NewMarkdownWriter creates a Markdown report writer
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// WriteReport renders the bundle and writes it to path
func (w *MarkdownWriter) WriteReport(ctx context.Context, bundle *report.Bundle, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if bundle == nil {
		return errors.InvalidInput("no report to write")
	}

	log.Printf("[MarkdownWriter] Writing report %s to %s", bundle.ReportID, path)

	doc := Render(bundle)

	data := []byte(doc)
	if strings.HasSuffix(strings.ToLower(path), ".html") {
		data = toHTML(data)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ExportFailure(path, err)
	}
	return nil
}

// toHTML runs the document through the Markdown parser and renders a
// complete HTML page
func toHTML(doc []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Data Analysis Report",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML(doc, p, renderer)
}

// Render builds the full Markdown document for a bundle
func Render(bundle *report.Bundle) string {
	var doc strings.Builder

	writeHeader(&doc, bundle)
	writeMissingSection(&doc, bundle)
	writeNumericSection(&doc, bundle)
	writeCategoricalSection(&doc, bundle)
	writeGroupedSection(&doc, bundle)
	writeCorrelationSection(&doc, bundle)
	writeHistogramSection(&doc, bundle)

	return doc.String()
}

func writeHeader(doc *strings.Builder, bundle *report.Bundle) {
	doc.WriteString("# Data Analysis Report\n\n")
	doc.WriteString(fmt.Sprintf("- Report: %s\n", bundle.ReportID))
	doc.WriteString(fmt.Sprintf("- Generated: %s\n", bundle.GeneratedAt))
	doc.WriteString(fmt.Sprintf("- Rows: %d (%d train, %d test)\n", bundle.TotalRows, bundle.TrainRows, bundle.TestRows))
	if bundle.LabelColumn != "" {
		doc.WriteString(fmt.Sprintf("- Label column: %s\n", bundle.LabelColumn))
	}
	doc.WriteString("\n")
}

func writeMissingSection(doc *strings.Builder, bundle *report.Bundle) {
	if len(bundle.Missing) == 0 {
		return
	}

	doc.WriteString("## Missing Values\n\n")
	doc.WriteString("| Column | Missing | Percentage |\n")
	doc.WriteString("| --- | --- | --- |\n")
	for _, entry := range bundle.Missing {
		doc.WriteString(fmt.Sprintf("| %s | %d | %.1f%% |\n", entry.Column, entry.Count, entry.Percentage))
	}
	doc.WriteString("\n")
}

func writeNumericSection(doc *strings.Builder, bundle *report.Bundle) {
	columns := summaryColumns(bundle, dataset.KindNumeric)
	if len(columns) == 0 {
		return
	}

	doc.WriteString("## Numeric Columns\n\n")
	doc.WriteString("| Column | Count | Missing | Mean | Median | Std Dev | Min | Q1 | Q3 | Max |\n")
	doc.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, col := range columns {
		ns := bundle.Summaries[col].Numeric
		doc.WriteString(fmt.Sprintf("| %s | %d | %d | %s | %s | %s | %s | %s | %s | %s |\n",
			col, ns.Count, ns.MissingCount,
			formatValue(ns.Mean), formatValue(ns.Median), formatValue(ns.StdDev),
			formatValue(ns.Min), formatValue(ns.Q1), formatValue(ns.Q3), formatValue(ns.Max)))
	}
	doc.WriteString("\n")
}

func writeCategoricalSection(doc *strings.Builder, bundle *report.Bundle) {
	columns := summaryColumns(bundle, dataset.KindCategorical)
	if len(columns) == 0 {
		return
	}

	doc.WriteString("## Categorical Columns\n\n")
	for _, col := range columns {
		cs := bundle.Summaries[col].Categorical
		doc.WriteString(fmt.Sprintf("### %s\n\n", col))
		doc.WriteString(fmt.Sprintf("%d present, %d missing, %d unique values\n\n", cs.Count, cs.MissingCount, cs.UniqueValueCount))
		doc.WriteString("| Value | Count |\n")
		doc.WriteString("| --- | --- |\n")
		for _, vc := range cs.TopValues {
			doc.WriteString(fmt.Sprintf("| %s | %d |\n", vc.Value, vc.Count))
		}
		doc.WriteString("\n")
	}
}

func writeGroupedSection(doc *strings.Builder, bundle *report.Bundle) {
	if len(bundle.Grouped) == 0 {
		return
	}

	doc.WriteString(fmt.Sprintf("## Grouped by %s\n\n", bundle.LabelColumn))

	columns := make([]string, 0, len(bundle.Grouped))
	for col := range bundle.Grouped {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	var numericRows []string
	for _, col := range columns {
		if g := bundle.Grouped[col]; g.Numeric != nil {
			numericRows = append(numericRows, fmt.Sprintf("| %s | %s | %s | %s |",
				col, formatValue(g.Numeric.PositiveMean), formatValue(g.Numeric.NegativeMean), formatValue(g.Numeric.Difference)))
		}
	}
	if len(numericRows) > 0 {
		doc.WriteString("| Column | Positive Mean | Negative Mean | Difference |\n")
		doc.WriteString("| --- | --- | --- | --- |\n")
		for _, row := range numericRows {
			doc.WriteString(row + "\n")
		}
		doc.WriteString("\n")
	}

	for _, col := range columns {
		g := bundle.Grouped[col]
		if len(g.Categories) == 0 {
			continue
		}
		doc.WriteString(fmt.Sprintf("### %s\n\n", col))
		doc.WriteString("| Value | Positive | Negative | Positive Rate |\n")
		doc.WriteString("| --- | --- | --- | --- |\n")
		for _, c := range g.Categories {
			doc.WriteString(fmt.Sprintf("| %s | %d | %d | %.1f%% |\n",
				c.Value, c.PositiveCount, c.NegativeCount, 100*c.PositiveRate))
		}
		doc.WriteString("\n")
	}
}

func writeCorrelationSection(doc *strings.Builder, bundle *report.Bundle) {
	matrix := bundle.Correlation
	if matrix == nil || matrix.Size() == 0 {
		return
	}

	doc.WriteString("## Correlation\n\n")
	doc.WriteString("| |")
	for _, col := range matrix.Columns {
		doc.WriteString(fmt.Sprintf(" %s |", col))
	}
	doc.WriteString("\n| --- |")
	for range matrix.Columns {
		doc.WriteString(" --- |")
	}
	doc.WriteString("\n")
	for i, col := range matrix.Columns {
		doc.WriteString(fmt.Sprintf("| %s |", col))
		for j := range matrix.Columns {
			doc.WriteString(fmt.Sprintf(" %.3f |", matrix.At(i, j)))
		}
		doc.WriteString("\n")
	}
	doc.WriteString("\n")
}

func writeHistogramSection(doc *strings.Builder, bundle *report.Bundle) {
	if len(bundle.Histograms) == 0 {
		return
	}

	doc.WriteString("## Distributions\n\n")
	for _, hist := range bundle.Histograms {
		doc.WriteString(fmt.Sprintf("### %s (%s)\n\n", hist.Column, hist.Variant))
		doc.WriteString("| Range | Count | Positive Rate |\n")
		doc.WriteString("| --- | --- | --- |\n")
		for _, bin := range hist.Bins {
			rate := "n/a"
			if bin.PositiveRate != nil {
				rate = fmt.Sprintf("%.1f%%", 100*(*bin.PositiveRate))
			}
			doc.WriteString(fmt.Sprintf("| %s to %s | %d | %s |\n",
				formatValue(bin.Lower), formatValue(bin.Upper), bin.Count, rate))
		}
		doc.WriteString("\n")
	}
}

// summaryColumns returns the alphabetized column names carrying a summary of
// the given kind
func summaryColumns(bundle *report.Bundle, kind dataset.ColumnKind) []string {
	var columns []string
	for col, summary := range bundle.Summaries {
		if summary.Kind == kind {
			columns = append(columns, col)
		}
	}
	sort.Strings(columns)
	return columns
}

// formatValue renders a float compactly: whole numbers bare, fractions to
// four places with trailing zeros trimmed
func formatValue(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
