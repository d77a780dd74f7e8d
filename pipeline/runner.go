package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pdfbench/analysis"
	"pdfbench/extract"
)

// ErrDependenciesNotMet is recorded for methods whose backend failed its
// startup probe. The adapter is never invoked in that case.
const ErrDependenciesNotMet = "dependencies not met"

var unsafeNameRe = regexp.MustCompile(`[\\/*?:"<>|]`)

func sanitizeName(name string) string {
	return unsafeNameRe.ReplaceAllString(name, "_")
}

// Runner executes the requested extraction methods sequentially against one
// document. Methods run one at a time so backends never share CPU or IO and
// timing comparisons stay honest.
type Runner struct {
	registry *extract.Registry
	analyzer *analysis.Analyzer
	logger   *zap.Logger
}

// NewRunner creates a Runner. The analyzer is optional; without it results
// carry no output statistics.
func NewRunner(registry *extract.Registry, analyzer *analysis.Analyzer, logger *zap.Logger) *Runner {
	return &Runner{
		registry: registry,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Run executes the requested methods in order against the document at path.
// Unrecognized names are skipped with a warning and produce no record;
// unavailable methods are recorded as failed without being invoked; every
// other failure is contained at the per-method boundary. The returned
// summary holds exactly one result per recognized requested method.
func (r *Runner) Run(ctx context.Context, path string, methods []string, outputRoot string) (*RunSummary, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input PDF not found at %s: %w", path, err)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("input file %s is not a PDF", path)
	}

	now := time.Now()
	summary := &RunSummary{
		RunID:     uuid.NewString(),
		Document:  path,
		StartedAt: now.Format(time.RFC3339),
		Stamp:     now.Format("20060102_150405"),
		Results:   make(map[string]ExtractionResult),
	}

	runDir := filepath.Join(outputRoot, summary.baseName()+"_"+summary.Stamp)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		// Fall back to the output root itself rather than aborting the run.
		r.logger.Error("failed to create run directory, falling back to output root",
			zap.String("dir", runDir),
			zap.Error(err))
		runDir = outputRoot
		if err := os.MkdirAll(runDir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory %s: %w", runDir, err)
		}
	}
	summary.OutputDir = runDir

	r.logger.Info("starting extraction pipeline",
		zap.String("document", path),
		zap.String("run_id", summary.RunID),
		zap.String("output_dir", runDir),
		zap.Strings("methods", methods))

	for _, name := range methods {
		method, ok := r.registry.Get(name)
		if !ok {
			r.logger.Warn("method not recognized, skipping",
				zap.String("method", name))
			continue
		}
		if _, done := summary.Results[name]; done {
			r.logger.Warn("method requested more than once, skipping duplicate",
				zap.String("method", name))
			continue
		}

		if !method.Available {
			r.logger.Warn("skipping method: dependencies not met",
				zap.String("method", name))
			summary.Results[name] = ExtractionResult{
				Success: false,
				Error:   ErrDependenciesNotMet,
			}
			continue
		}

		summary.Results[name] = r.runMethod(ctx, method, path, runDir)
	}

	r.logger.Info("extraction pipeline finished",
		zap.String("run_id", summary.RunID),
		zap.Int("methods_run", len(summary.Results)))

	return summary, nil
}

// runMethod invokes one adapter with timing, classifies the outcome, and
// writes the output file on success.
func (r *Runner) runMethod(ctx context.Context, method extract.Method, path, runDir string) ExtractionResult {
	r.logger.Info("running method", zap.String("method", method.Name))

	start := time.Now()
	output, err := r.invoke(ctx, method, path)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		r.logger.Error("method failed",
			zap.String("method", method.Name),
			zap.Float64("seconds", elapsed),
			zap.Error(err))
		return ExtractionResult{
			TimeTaken: elapsed,
			Success:   false,
			Error:     err.Error(),
		}
	}

	if strings.TrimSpace(output) == "" {
		r.logger.Warn("method produced empty output",
			zap.String("method", method.Name))
	}

	outputPath := filepath.Join(runDir, method.Name+"."+method.Format.Extension())
	if writeErr := os.WriteFile(outputPath, []byte(output), 0644); writeErr != nil {
		r.logger.Error("failed to write output file",
			zap.String("method", method.Name),
			zap.String("file", outputPath),
			zap.Error(writeErr))
		return ExtractionResult{
			TimeTaken: elapsed,
			Success:   false,
			Error:     fmt.Sprintf("file write error: %v", writeErr),
		}
	}

	r.logger.Info("method succeeded",
		zap.String("method", method.Name),
		zap.Float64("seconds", elapsed),
		zap.String("output", outputPath))

	result := ExtractionResult{
		OutputFile: &outputPath,
		TimeTaken:  elapsed,
		Success:    true,
	}
	if r.analyzer != nil {
		result.Stats = r.analyzer.Analyze(output)
	}
	return result
}

// invoke calls the adapter behind a panic fence so one crashing backend
// never aborts the run.
func (r *Runner) invoke(ctx context.Context, method extract.Method, path string) (output string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("method panicked",
				zap.String("method", method.Name),
				zap.Any("panic", rec))
			err = fmt.Errorf("unexpected panic during %q execution: %v", method.Name, rec)
		}
	}()
	return method.Run(ctx, path)
}
