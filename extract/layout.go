package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/markusmobius/go-trafilatura"
	"go.uber.org/zap"
)

// LayoutStrategy selects how aggressively the layout-aware extraction prunes
// boilerplate from the rendered page structure.
type LayoutStrategy string

const (
	LayoutPrecision LayoutStrategy = "precision"
	LayoutRecall    LayoutStrategy = "recall"
)

// newLayoutExtractor renders each page as HTML with MuPDF and runs
// trafilatura's structure-aware content extraction over it. The strategy is
// fixed at registration time and never exposed to the pipeline.
func newLayoutExtractor(strategy LayoutStrategy, logger *zap.Logger) Extractor {
	opts := trafilatura.Options{}
	switch strategy {
	case LayoutPrecision:
		opts.FavorPrecision = true
	case LayoutRecall:
		opts.FavorRecall = true
	}

	return func(_ context.Context, path string) (string, error) {
		doc, err := fitz.New(path)
		if err != nil {
			logger.Error("layout: failed to open PDF",
				zap.String("file", path),
				zap.String("strategy", string(strategy)),
				zap.Error(err))
			return "", fmt.Errorf("open pdf: %w", err)
		}
		defer doc.Close()

		logger.Debug("running layout-aware extraction",
			zap.String("file", path),
			zap.String("strategy", string(strategy)))

		var parts []string
		for page := 0; page < doc.NumPage(); page++ {
			html, err := pageHTML(doc, page)
			if err != nil {
				logger.Warn("layout: page render failed",
					zap.Int("page", page+1),
					zap.Error(err))
				continue
			}

			result, err := trafilatura.Extract(strings.NewReader(html), opts)
			if err != nil {
				logger.Warn("layout: content extraction failed",
					zap.Int("page", page+1),
					zap.String("strategy", string(strategy)),
					zap.Error(err))
				continue
			}

			text := strings.TrimSpace(result.ContentText)
			if text != "" {
				parts = append(parts, text)
			}
		}

		return strings.Join(parts, "\n\n"), nil
	}
}
