package extract

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

// newReadabilityExtractor renders each page as HTML and applies the
// readability article parser to it. Readability is tuned for articles, so on
// dense PDFs it tends to keep body text and drop headers and footers.
func newReadabilityExtractor(logger *zap.Logger) Extractor {
	return func(_ context.Context, path string) (string, error) {
		doc, err := fitz.New(path)
		if err != nil {
			logger.Error("readability: failed to open PDF",
				zap.String("file", path),
				zap.Error(err))
			return "", fmt.Errorf("open pdf: %w", err)
		}
		defer doc.Close()

		pageURL := &url.URL{Scheme: "file", Path: path}
		parser := readability.NewParser()

		var parts []string
		for page := 0; page < doc.NumPage(); page++ {
			html, err := pageHTML(doc, page)
			if err != nil {
				logger.Warn("readability: page render failed",
					zap.Int("page", page+1),
					zap.Error(err))
				continue
			}

			article, err := parser.Parse(strings.NewReader(html), pageURL)
			if err != nil {
				logger.Warn("readability: parse failed",
					zap.Int("page", page+1),
					zap.Error(err))
				continue
			}

			text := strings.TrimSpace(article.TextContent)
			if text != "" {
				parts = append(parts, text)
			}
		}

		return strings.Join(parts, "\n\n"), nil
	}
}
