package extract

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// newOCRExtractor renders each page to a PNG with MuPDF and runs tesseract
// recognition on it. Rendering failures and recognition failures are
// attributed separately in the diagnostics; a recognition failure on one
// page leaves an inline marker and continues with the next page.
func newOCRExtractor(dpi float64, language string, logger *zap.Logger) Extractor {
	return func(_ context.Context, path string) (string, error) {
		doc, err := fitz.New(path)
		if err != nil {
			logger.Error("ocr: failed to open PDF for rendering",
				zap.String("file", path),
				zap.Error(err))
			return "", fmt.Errorf("render stage: open pdf: %w", err)
		}
		defer doc.Close()

		client := gosseract.NewClient()
		defer client.Close()

		if err := client.SetLanguage(language); err != nil {
			logger.Error("ocr: tesseract language not installed",
				zap.String("language", language),
				zap.Error(err))
			return "", fmt.Errorf("recognition stage: set language %q: %w", language, err)
		}
		client.SetVariable("tessedit_pageseg_mode", "3")
		client.SetVariable("preserve_interword_spaces", "1")

		var sb strings.Builder
		for page := 0; page < doc.NumPage(); page++ {
			img, err := doc.ImageDPI(page, dpi)
			if err != nil {
				logger.Error("ocr: failed to render page to image",
					zap.String("file", path),
					zap.Int("page", page+1),
					zap.Error(err))
				return "", fmt.Errorf("render stage: page %d: %w", page+1, err)
			}

			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				return "", fmt.Errorf("render stage: encode page %d: %w", page+1, err)
			}

			if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
				logger.Error("ocr: failed to feed image to tesseract",
					zap.Int("page", page+1),
					zap.Error(err))
				sb.WriteString(fmt.Sprintf("[OCR Error on page %d]\n", page+1))
				continue
			}

			text, err := client.Text()
			if err != nil {
				logger.Error("ocr: recognition failed",
					zap.String("file", path),
					zap.Int("page", page+1),
					zap.Error(err))
				sb.WriteString(fmt.Sprintf("[OCR Error on page %d]\n", page+1))
				continue
			}
			sb.WriteString(text)
			sb.WriteByte('\n')
		}

		return sb.String(), nil
	}
}
