package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"reflect"
	"strings"
	"testing"
)

func sampleSummary() *RunSummary {
	output := "/tmp/run/fitz.txt"
	return &RunSummary{
		RunID:     "run-1234",
		Document:  "/data/report.pdf",
		StartedAt: "2026-08-30T10:00:00Z",
		Stamp:     "20260830_100000",
		OutputDir: "/tmp/run",
		Results: map[string]ExtractionResult{
			"fitz": {
				OutputFile: &output,
				TimeTaken:  0.42,
				Success:    true,
			},
			"ocr": {
				TimeTaken: 12.5,
				Success:   false,
				Error:     "recognition stage: set language \"eng\": not installed",
			},
			"aimd": {
				Success: false,
				Error:   ErrDependenciesNotMet,
			},
		},
	}
}

func TestSummaryJSONRoundTrip(t *testing.T) {
	summary := sampleSummary()

	outputRoot := t.TempDir()
	path, err := summary.Write(outputRoot)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("summary file unreadable: %v", err)
	}

	var parsed RunSummary
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("summary file is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(&parsed, summary) {
		t.Errorf("round-tripped summary differs:\n got %+v\nwant %+v", parsed, summary)
	}
}

func TestSummaryFileName(t *testing.T) {
	summary := sampleSummary()
	want := "summary_report_20260830_100000.json"
	if got := summary.SummaryFileName(); got != want {
		t.Errorf("SummaryFileName() = %q, want %q", got, want)
	}
}

func TestSummaryWriteFailsOnMissingRoot(t *testing.T) {
	summary := sampleSummary()
	if _, err := summary.Write("/nonexistent/root/for/sure"); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}

func TestSummaryPrintSortedWithFailures(t *testing.T) {
	var buf bytes.Buffer
	sampleSummary().Print(&buf)
	out := buf.String()

	for _, want := range []string{"fitz", "ocr", "aimd", "Success", "Failed", "no output", ErrDependenciesNotMet} {
		if !strings.Contains(out, want) {
			t.Errorf("summary table missing %q:\n%s", want, out)
		}
	}

	// Sorted by method name: aimd before fitz before ocr.
	if strings.Index(out, "aimd") > strings.Index(out, "fitz") ||
		strings.Index(out, "fitz") > strings.Index(out, "ocr") {
		t.Errorf("summary table not sorted by method name:\n%s", out)
	}
}
