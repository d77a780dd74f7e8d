package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var (
	multiSpaceRe   = regexp.MustCompile(`\s{2,}`)
	multiNewlineRe = regexp.MustCompile(`(\n\s*){2,}`)
)

// newVisitorExtractor walks every positioned text fragment of every page via
// github.com/ledongthuc/pdf, inserting a page-break marker between pages.
// Per-page failures are recorded inline and do not abort the document.
func newVisitorExtractor(logger *zap.Logger) Extractor {
	return func(_ context.Context, path string) (string, error) {
		f, r, err := pdf.Open(path)
		if err != nil {
			logger.Error("visitor: failed to open PDF",
				zap.String("file", path),
				zap.Error(err))
			return "", fmt.Errorf("open pdf: %w", err)
		}
		defer f.Close()

		var sb strings.Builder
		for i := 1; i <= r.NumPage(); i++ {
			if err := visitPage(r, i, &sb); err != nil {
				logger.Warn("visitor: page failed",
					zap.String("file", path),
					zap.Int("page", i),
					zap.Error(err))
				sb.WriteString(fmt.Sprintf("\n[Error on Page %d]\n", i))
				continue
			}
			sb.WriteString("\n--- Page Break ---\n")
		}

		cleaned := multiSpaceRe.ReplaceAllString(sb.String(), " ")
		cleaned = multiNewlineRe.ReplaceAllString(cleaned, "\n\n")
		return strings.TrimSpace(cleaned), nil
	}
}

// visitPage appends every non-blank text fragment of one page. The pdf
// library panics on some malformed content streams, so the walk is fenced.
func visitPage(r *pdf.Reader, pageNum int, sb *strings.Builder) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page content panic: %v", rec)
		}
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return fmt.Errorf("page %d is null", pageNum)
	}

	content := page.Content()
	for _, text := range content.Text {
		if strings.TrimSpace(text.S) == "" {
			continue
		}
		sb.WriteString(text.S)
		sb.WriteByte(' ')
	}
	return nil
}
