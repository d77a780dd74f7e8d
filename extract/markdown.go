package extract

import (
	"context"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// newFitzMarkdownExtractor converts each page to Markdown: MuPDF renders the
// page as HTML, the markup is cleaned, and the remainder is converted with
// html-to-markdown.
func newFitzMarkdownExtractor(keepImages bool, logger *zap.Logger) Extractor {
	return func(_ context.Context, path string) (string, error) {
		doc, err := fitz.New(path)
		if err != nil {
			logger.Error("fitzmd: failed to open PDF",
				zap.String("file", path),
				zap.Error(err))
			return "", fmt.Errorf("open pdf: %w", err)
		}
		defer doc.Close()

		var parts []string
		for page := 0; page < doc.NumPage(); page++ {
			html, err := pageHTML(doc, page)
			if err != nil {
				logger.Warn("fitzmd: page render failed",
					zap.Int("page", page+1),
					zap.Error(err))
				continue
			}

			cleaned, err := cleanPageHTML(html, keepImages)
			if err != nil {
				logger.Warn("fitzmd: html cleanup failed",
					zap.Int("page", page+1),
					zap.Error(err))
				continue
			}

			md, err := htmltomarkdown.ConvertString(cleaned)
			if err != nil {
				logger.Warn("fitzmd: markdown conversion failed",
					zap.Int("page", page+1),
					zap.Error(err))
				continue
			}

			md = strings.TrimSpace(md)
			if md != "" {
				parts = append(parts, md)
			}
		}

		return strings.Join(parts, "\n\n"), nil
	}
}

// cleanPageHTML strips markup that has no Markdown rendering (styles,
// scripts) and, unless keepImages is set, inline images.
func cleanPageHTML(html string, keepImages bool) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse page html: %w", err)
	}

	doc.Find("style, script").Remove()
	if !keepImages {
		doc.Find("img").Remove()
	}

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serialize page html: %w", err)
	}
	if strings.TrimSpace(body) == "" {
		// Fragment without a body element; fall back to the whole document.
		return doc.Selection.Text(), nil
	}
	return body, nil
}
