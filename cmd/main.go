package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"pdfbench/analysis"
	"pdfbench/config"
	"pdfbench/extract"
	"pdfbench/pipeline"
	"pdfbench/pkg/history"
)

func main() {
	pdfPath := flag.String("pdf", "", "path to the PDF to run the extraction methods against")
	methodsFlag := flag.String("methods", "", "comma-separated method names (default: all registered)")
	outputRoot := flag.String("out", "", "output root directory (default: OUTPUT_ROOT env or pdf_extraction_results)")
	listHistory := flag.Bool("history", false, "list past runs and exit")
	flag.Parse()

	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *outputRoot != "" {
		cfg.OutputRoot = *outputRoot
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Run history
	// =========
	var store *history.Store
	if cfg.HistoryDBPath != "" {
		store = &history.Store{DBPath: cfg.HistoryDBPath}
		if err := store.Init(); err != nil {
			logger.Warn("run history disabled", zap.Error(err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	if *listHistory {
		if store == nil {
			log.Fatal("run history is not available")
		}
		printHistory(store)
		return
	}

	if *pdfPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	// =========
	// Method registry
	// =========
	registry := extract.NewDefault(extract.Config{
		PdfToTextPath:    cfg.PdfToTextPath,
		AIMarkdownURL:    cfg.AIMarkdownURL,
		OCRImageDPI:      cfg.OCRImageDPI,
		OCRLanguage:      cfg.OCRLanguage,
		ProcessImages:    true,
		KeepImagesInline: true,
	}, logger)

	methods, err := resolveMethods(*methodsFlag, cfg, registry)
	if err != nil {
		log.Fatalf("Failed to resolve method list: %v", err)
	}

	// =========
	// Output analysis
	// =========
	analyzer := analysis.NewAnalyzer(cfg.TokenizerFilePath, logger)
	defer analyzer.Close()

	// =========
	// Pipeline
	// =========
	runner := pipeline.NewRunner(registry, analyzer, logger)
	summary, err := runner.Run(context.Background(), *pdfPath, methods, cfg.OutputRoot)
	if err != nil {
		log.Fatalf("Pipeline execution failed: %v", err)
	}

	summary.Print(os.Stdout)

	summaryPath, err := summary.Write(cfg.OutputRoot)
	if err != nil {
		logger.Error("failed to save summary JSON", zap.Error(err))
	} else {
		fmt.Printf("\nSummary results saved to: %s\n", summaryPath)
	}

	if store != nil {
		if err := store.Save(summary); err != nil {
			logger.Error("failed to record run in history", zap.Error(err))
		}
	}
}

// resolveMethods picks the method list: -methods flag, then METHODS_FILE,
// then every registered method.
func resolveMethods(methodsFlag string, cfg *config.Config, registry *extract.Registry) ([]string, error) {
	if methodsFlag != "" {
		var methods []string
		for _, name := range strings.Split(methodsFlag, ",") {
			if name = strings.TrimSpace(name); name != "" {
				methods = append(methods, name)
			}
		}
		return methods, nil
	}
	if cfg.MethodsFilePath != "" {
		return config.LoadMethods(cfg.MethodsFilePath)
	}
	return registry.Names(), nil
}

func printHistory(store *history.Store) {
	summaries, err := store.List()
	if err != nil {
		log.Fatalf("Failed to list run history: %v", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No recorded runs.")
		return
	}
	for _, s := range summaries {
		succeeded := 0
		for _, result := range s.Results {
			if result.Success {
				succeeded++
			}
		}
		fmt.Printf("%s  %s  %s  %d/%d methods succeeded\n",
			s.StartedAt, s.RunID, s.Document, succeeded, len(s.Results))
	}
}
