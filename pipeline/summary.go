package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"pdfbench/analysis"
)

// ExtractionResult is the outcome of one (document, method) pair. Never
// mutated after the runner records it.
type ExtractionResult struct {
	OutputFile *string               `json:"output_file"`
	TimeTaken  float64               `json:"time_taken"`
	Success    bool                  `json:"success"`
	Error      string                `json:"error"`
	Stats      *analysis.OutputStats `json:"stats,omitempty"`
}

// RunSummary aggregates the per-method outcomes of one pipeline run.
type RunSummary struct {
	RunID     string                      `json:"run_id"`
	Document  string                      `json:"document"`
	StartedAt string                      `json:"started_at"`
	Stamp     string                      `json:"stamp"`
	OutputDir string                      `json:"output_dir"`
	Results   map[string]ExtractionResult `json:"results"`
}

// baseName returns the sanitized document base name used in output paths.
func (s *RunSummary) baseName() string {
	base := filepath.Base(s.Document)
	base = base[:len(base)-len(filepath.Ext(base))]
	return sanitizeName(base)
}

// SummaryFileName is the name of the JSON summary file for this run.
func (s *RunSummary) SummaryFileName() string {
	return fmt.Sprintf("summary_%s_%s.json", s.baseName(), s.Stamp)
}

// Print writes a human-readable per-method table, sorted by method name.
func (s *RunSummary) Print(w io.Writer) {
	names := make([]string, 0, len(s.Results))
	for name := range s.Results {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "\nSummary for %s (run %s):\n", s.Document, s.RunID)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, name := range names {
		result := s.Results[name]

		status := "Success"
		if !result.Success {
			status = "Failed"
		}
		fileInfo := "no output"
		if result.OutputFile != nil {
			fileInfo = *result.OutputFile
		}
		errorInfo := ""
		if !result.Success {
			errorInfo = result.Error
		}

		fmt.Fprintf(tw, "%s\t%s\t%.2fs\t%s\t%s\n",
			name, status, result.TimeTaken, fileInfo, errorInfo)
	}
	tw.Flush()
}

// Write serializes the summary to <outputRoot>/summary_<base>_<stamp>.json
// and returns the file path.
func (s *RunSummary) Write(outputRoot string) (string, error) {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	path := filepath.Join(outputRoot, s.SummaryFileName())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write summary file %s: %w", path, err)
	}
	return path, nil
}
