package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// newFitzExtractor extracts text page by page with MuPDF via go-fitz.
func newFitzExtractor(logger *zap.Logger) Extractor {
	return func(_ context.Context, path string) (string, error) {
		doc, err := fitz.New(path)
		if err != nil {
			logger.Error("fitz: failed to open PDF",
				zap.String("file", path),
				zap.Error(err))
			return "", fmt.Errorf("open pdf: %w", err)
		}
		defer doc.Close()

		var sb strings.Builder
		for page := 0; page < doc.NumPage(); page++ {
			text, err := doc.Text(page)
			if err != nil {
				logger.Warn("fitz: page extraction failed",
					zap.String("file", path),
					zap.Int("page", page+1),
					zap.Error(err))
				continue
			}
			sb.WriteString(text)
		}

		return sb.String(), nil
	}
}

// pageHTML renders one page as an HTML fragment for the HTML-consuming
// backends (layout, readability, fitzmd).
func pageHTML(doc *fitz.Document, page int) (string, error) {
	html, err := doc.HTML(page, true)
	if err != nil {
		return "", fmt.Errorf("render page %d as html: %w", page+1, err)
	}
	return html, nil
}
