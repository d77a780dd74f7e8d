package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"go.uber.org/zap"
)

// newPdfToTextExtractor shells out to the poppler pdftotext binary with
// layout preservation, writing the result to stdout.
func newPdfToTextExtractor(binPath string, logger *zap.Logger) Extractor {
	return func(ctx context.Context, path string) (string, error) {
		cmd := exec.CommandContext(ctx, binPath, "-layout", path, "-")

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				logger.Error("pdftotext binary not found; install poppler-utils and ensure it is on PATH",
					zap.String("binary", binPath))
			} else {
				logger.Error("pdftotext failed",
					zap.String("file", path),
					zap.String("stderr", stderr.String()),
					zap.Error(err))
			}
			return "", fmt.Errorf("pdftotext %s: %w: %s", path, err, stderr.String())
		}

		return stdout.String(), nil
	}
}
