package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func writeTempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fixture"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAIMarkdownExtractConcatenatesPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/convert" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("request is not multipart: %v", err)
		}
		if got := r.FormValue("process_images"); got != "true" {
			t.Errorf("process_images = %q", got)
		}
		if got := r.FormValue("keep_images_inline"); got != "false" {
			t.Errorf("keep_images_inline = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"page": 1, "text": "# Introduction", "tables": 0, "images": 1, "tokens": 12, "language": "en"},
			{"page": 2, "text": "Some body text.", "tables": 2, "images": 0, "tokens": 40, "language": "en"}
		]`))
	}))
	defer srv.Close()

	client := NewAIMarkdownClient(srv.URL, 5*time.Second, true, false, zap.NewNop())
	out, err := client.Extract(context.Background(), writeTempPDF(t))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	for _, want := range []string{"--- Page 1 ---", "# Introduction", "--- Page 2 ---", "Some body text."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "--- Page 1 ---") > strings.Index(out, "--- Page 2 ---") {
		t.Error("pages out of order")
	}
}

func TestAIMarkdownExtractEmptyResultIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewAIMarkdownClient(srv.URL, 5*time.Second, true, true, zap.NewNop())
	out, err := client.Extract(context.Background(), writeTempPDF(t))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestAIMarkdownExtractServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewAIMarkdownClient(srv.URL, 5*time.Second, true, true, zap.NewNop())
	if _, err := client.Extract(context.Background(), writeTempPDF(t)); err == nil {
		t.Fatal("expected error from non-200 response")
	}
}

func TestAIMarkdownExtractMissingFile(t *testing.T) {
	client := NewAIMarkdownClient("http://127.0.0.1:9", time.Second, true, true, zap.NewNop())
	if _, err := client.Extract(context.Background(), "/no/such/file.pdf"); err == nil {
		t.Fatal("expected error for missing input file")
	}
}
