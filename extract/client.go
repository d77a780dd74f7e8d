package extract

import (
	"context"
	"time"
)

// Format tags the output a method produces.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// Extension returns the output file extension for the format.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return "txt"
}

// Extractor normalizes one backend library's extraction call: given a PDF
// path it returns the full extracted text (or Markdown), or an error when
// the backend failed. An empty string with a nil error is a valid result.
type Extractor func(ctx context.Context, path string) (string, error)

// Method is one registered extraction backend. Immutable after registry
// construction.
type Method struct {
	Name      string
	Format    Format
	Available bool
	Run       Extractor
}

// Config carries the fixed per-backend settings baked into registry entries.
type Config struct {
	// PdfToTextPath is the poppler pdftotext binary ("pdftotext" if empty).
	PdfToTextPath string

	// AIMarkdownURL is the base URL of the Markdown-AI conversion service.
	// The aimd method is unavailable when empty.
	AIMarkdownURL string

	// OCRImageDPI is the render resolution for the OCR method.
	OCRImageDPI float64

	// OCRLanguage is the tesseract language passed to gosseract.
	OCRLanguage string

	// ProcessImages / KeepImagesInline are forwarded to the Markdown-AI
	// service and control image handling in the fitzmd conversion.
	ProcessImages    bool
	KeepImagesInline bool

	// AIRequestTimeout bounds one Markdown-AI conversion call.
	AIRequestTimeout time.Duration
}

// DefaultConfig returns the backend settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		PdfToTextPath:    "pdftotext",
		OCRImageDPI:      300,
		OCRLanguage:      "eng",
		ProcessImages:    true,
		KeepImagesInline: true,
		AIRequestTimeout: 5 * time.Minute,
	}
}
