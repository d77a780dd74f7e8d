package extract

import (
	"os/exec"
	"sort"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// Registry maps method names to extraction backends. Built once at startup;
// read-only afterward.
type Registry struct {
	methods map[string]Method
	logger  *zap.Logger
}

// New returns an empty registry. Callers add methods with Register.
func New(logger *zap.Logger) *Registry {
	return &Registry{
		methods: make(map[string]Method),
		logger:  logger,
	}
}

// Register adds a method. A later registration under the same name replaces
// the earlier one.
func (r *Registry) Register(m Method) {
	r.methods[m.Name] = m
}

// Get looks up a method by name.
func (r *Registry) Get(name string) (Method, bool) {
	m, ok := r.methods[name]
	return m, ok
}

// Names returns all registered method names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDefault builds the full method registry, probing optional backends
// once. Fixed per-backend configuration (layout strategy, OCR resolution,
// image handling for the AI converter) is baked into the registered
// closures.
func NewDefault(cfg Config, logger *zap.Logger) *Registry {
	def := DefaultConfig()
	if cfg.PdfToTextPath == "" {
		cfg.PdfToTextPath = def.PdfToTextPath
	}
	if cfg.OCRImageDPI <= 0 {
		cfg.OCRImageDPI = def.OCRImageDPI
	}
	if cfg.OCRLanguage == "" {
		cfg.OCRLanguage = def.OCRLanguage
	}
	if cfg.AIRequestTimeout <= 0 {
		cfg.AIRequestTimeout = def.AIRequestTimeout
	}

	r := New(logger)

	r.Register(Method{
		Name:      "plaintext",
		Format:    FormatText,
		Available: true,
		Run:       newPlainTextExtractor(logger),
	})
	r.Register(Method{
		Name:      "visitor",
		Format:    FormatText,
		Available: true,
		Run:       newVisitorExtractor(logger),
	})
	r.Register(Method{
		Name:      "fitz",
		Format:    FormatText,
		Available: true,
		Run:       newFitzExtractor(logger),
	})
	r.Register(Method{
		Name:      "ocr",
		Format:    FormatText,
		Available: probeTesseract(logger),
		Run:       newOCRExtractor(cfg.OCRImageDPI, cfg.OCRLanguage, logger),
	})
	r.Register(Method{
		Name:      "pdftotext",
		Format:    FormatText,
		Available: probeBinary(cfg.PdfToTextPath, logger),
		Run:       newPdfToTextExtractor(cfg.PdfToTextPath, logger),
	})
	r.Register(Method{
		Name:      "layout_precision",
		Format:    FormatText,
		Available: true,
		Run:       newLayoutExtractor(LayoutPrecision, logger),
	})
	r.Register(Method{
		Name:      "layout_recall",
		Format:    FormatText,
		Available: true,
		Run:       newLayoutExtractor(LayoutRecall, logger),
	})
	r.Register(Method{
		Name:      "readability",
		Format:    FormatText,
		Available: true,
		Run:       newReadabilityExtractor(logger),
	})
	r.Register(Method{
		Name:      "langchain",
		Format:    FormatText,
		Available: true,
		Run:       newLangchainExtractor(logger),
	})
	r.Register(Method{
		Name:      "fitzmd",
		Format:    FormatMarkdown,
		Available: true,
		Run:       newFitzMarkdownExtractor(cfg.KeepImagesInline, logger),
	})

	aiClient := NewAIMarkdownClient(cfg.AIMarkdownURL, cfg.AIRequestTimeout,
		cfg.ProcessImages, cfg.KeepImagesInline, logger)
	r.Register(Method{
		Name:      "aimd",
		Format:    FormatMarkdown,
		Available: cfg.AIMarkdownURL != "",
		Run:       aiClient.Extract,
	})

	return r
}

// probeTesseract checks once whether the tesseract engine and its language
// data are usable.
func probeTesseract(logger *zap.Logger) bool {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		logger.Warn("ocr method unavailable: tesseract language data not found",
			zap.Error(err))
		return false
	}
	if len(langs) == 0 {
		logger.Warn("ocr method unavailable: no tesseract languages installed")
		return false
	}
	return true
}

// probeBinary checks once whether an external converter binary is on PATH.
func probeBinary(name string, logger *zap.Logger) bool {
	if _, err := exec.LookPath(name); err != nil {
		logger.Warn("external binary not found",
			zap.String("binary", name),
			zap.Error(err))
		return false
	}
	return true
}
