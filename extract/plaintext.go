package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// newPlainTextExtractor extracts text with github.com/ledongthuc/pdf using
// its whole-document plain text reader.
func newPlainTextExtractor(logger *zap.Logger) Extractor {
	return func(_ context.Context, path string) (string, error) {
		f, r, err := pdf.Open(path)
		if err != nil {
			logger.Error("plaintext: failed to open PDF",
				zap.String("file", path),
				zap.Error(err))
			return "", fmt.Errorf("open pdf: %w", err)
		}
		defer f.Close()

		reader, err := r.GetPlainText()
		if err != nil {
			logger.Error("plaintext: extraction failed",
				zap.String("file", path),
				zap.Error(err))
			return "", fmt.Errorf("extract plain text: %w", err)
		}

		content, err := io.ReadAll(reader)
		if err != nil {
			return "", fmt.Errorf("read plain text: %w", err)
		}

		return string(content), nil
	}
}
