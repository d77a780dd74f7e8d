package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the harness configuration, loaded from the environment. Every
// value has a default; nothing is required.
type Config struct {
	OutputRoot        string
	PdfToTextPath     string
	AIMarkdownURL     string
	OCRImageDPI       float64
	OCRLanguage       string
	TokenizerFilePath string
	HistoryDBPath     string
	MethodsFilePath   string
}

func Load() (*Config, error) {
	dpi := 300.0
	if v := os.Getenv("OCR_DPI"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid OCR_DPI %q: %w", v, err)
		}
		dpi = parsed
	}

	return &Config{
		OutputRoot:        getEnv("OUTPUT_ROOT", "pdf_extraction_results"),
		PdfToTextPath:     getEnv("PDFTOTEXT_PATH", "pdftotext"),
		AIMarkdownURL:     os.Getenv("AI_MD_URL"),
		OCRImageDPI:       dpi,
		OCRLanguage:       getEnv("OCR_LANGUAGE", "eng"),
		TokenizerFilePath: os.Getenv("TOKENIZER_FILE_PATH"),
		HistoryDBPath:     getEnv("HISTORY_DB_PATH", "pdfbench_history.db"),
		MethodsFilePath:   os.Getenv("METHODS_FILE"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// LoadMethods reads an ordered method list from a YAML file:
//
//	methods:
//	  - plaintext
//	  - fitz
func LoadMethods(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read methods file %s: %w", path, err)
	}

	var doc struct {
		Methods []string `yaml:"methods"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse methods file %s: %w", path, err)
	}
	if len(doc.Methods) == 0 {
		return nil, fmt.Errorf("methods file %s lists no methods", path)
	}
	return doc.Methods, nil
}
