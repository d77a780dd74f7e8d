package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
	"go.uber.org/zap"
)

// newLangchainExtractor loads the PDF through langchaingo's document loader,
// which yields one document per page.
func newLangchainExtractor(logger *zap.Logger) Extractor {
	return func(ctx context.Context, path string) (string, error) {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open pdf: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return "", fmt.Errorf("stat pdf: %w", err)
		}

		loader := documentloaders.NewPDF(f, info.Size())
		docs, err := loader.Load(ctx)
		if err != nil {
			logger.Error("langchain: loader failed",
				zap.String("file", path),
				zap.Error(err))
			return "", fmt.Errorf("load pdf: %w", err)
		}

		var parts []string
		for _, d := range docs {
			if d.PageContent != "" {
				parts = append(parts, d.PageContent)
			}
		}

		return strings.Join(parts, "\n\n"), nil
	}
}
