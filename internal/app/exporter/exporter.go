package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/daabcontech/navisexport/internal/infra/navisxml"
	"github.com/daabcontech/navisexport/internal/infra/tablefs"
)

// Exporter runs one full export: read the viewpoint XML, project it into
// table rows, write the CSV table and the trace log.
type Exporter struct {
	InputPath   string
	OutputDir   string
	CSVName     string
	StreamTrace bool
}

type Stats struct {
	Views      int
	Rows       int
	Duplicates int
	TablePath  string
	TracePath  string
}

func (e Exporter) Run() (Stats, error) {
	if e.InputPath == "" {
		return Stats{}, fmt.Errorf("input path is required")
	}
	outputDir := e.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	csvName := e.CSVName
	if csvName == "" {
		csvName = tablefs.DefaultTableName
	}
	if filepath.Base(csvName) != csvName {
		return Stats{}, fmt.Errorf("csv name must be a bare file name: %q", csvName)
	}

	runID := uuid.NewString()

	doc, err := navisxml.ReadFile(e.InputPath)
	if err != nil {
		return Stats{}, err
	}

	var stream func(string)
	if e.StreamTrace {
		stream = func(line string) { fmt.Println(line) }
	}

	start := fmt.Sprintf("run %s: processing %s", runID, e.InputPath)
	if stream != nil {
		stream(start)
	}

	bar := newViewProgressBar(doc.CountViews())
	defer bar.Close()

	result := projectDocument(doc, imagePrefix(csvName), bar.Advance, stream)

	summary := fmt.Sprintf("run %s: %d views, %d rows, %d duplicates skipped",
		runID, result.Views, len(result.Rows), result.Duplicates)
	if stream != nil {
		stream(summary)
	}

	traceLines := make([]string, 0, len(result.Trace)+2)
	traceLines = append(traceLines, start)
	traceLines = append(traceLines, result.Trace...)
	traceLines = append(traceLines, summary)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create output dir: %w", err)
	}

	tablePath := filepath.Join(outputDir, csvName)
	if err := tablefs.WriteTable(tablePath, result.Rows); err != nil {
		return Stats{}, err
	}

	tracePath := filepath.Join(outputDir, tablefs.TraceFileName)
	if err := tablefs.WriteTrace(tracePath, traceLines); err != nil {
		return Stats{}, err
	}

	bar.Finish("done")

	return Stats{
		Views:      result.Views,
		Rows:       len(result.Rows),
		Duplicates: result.Duplicates,
		TablePath:  tablePath,
		TracePath:  tracePath,
	}, nil
}

// imagePrefix derives the per-view image file prefix from the table's base
// name. The image files themselves are produced later by the renderer, keyed
// by view GUID; only the naming contract lives here.
func imagePrefix(csvName string) string {
	stem := strings.TrimSuffix(filepath.Base(csvName), filepath.Ext(csvName))
	if stem == "" {
		return "vp_"
	}
	return stem + "_vp"
}
