package extract

import (
	"strings"
	"testing"
)

func TestCleanPageHTMLStripsStylesAndScripts(t *testing.T) {
	html := `<html><head><style>p{color:red}</style></head>
	<body><script>alert(1)</script><p>Kept paragraph</p>
	<img src="page0.png"/></body></html>`

	testCases := []struct {
		name       string
		keepImages bool
		wantImage  bool
	}{
		{"ImagesKept", true, true},
		{"ImagesStripped", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := cleanPageHTML(html, tc.keepImages)
			if err != nil {
				t.Fatalf("cleanPageHTML returned error: %v", err)
			}
			if !strings.Contains(out, "Kept paragraph") {
				t.Errorf("body content lost:\n%s", out)
			}
			if strings.Contains(out, "<style") || strings.Contains(out, "<script") {
				t.Errorf("style/script not removed:\n%s", out)
			}
			if got := strings.Contains(out, "<img"); got != tc.wantImage {
				t.Errorf("image presence = %v, want %v:\n%s", got, tc.wantImage, out)
			}
		})
	}
}

func TestCleanPageHTMLFragmentWithoutBody(t *testing.T) {
	out, err := cleanPageHTML(`<p>just a fragment</p>`, true)
	if err != nil {
		t.Fatalf("cleanPageHTML returned error: %v", err)
	}
	if !strings.Contains(out, "just a fragment") {
		t.Errorf("fragment content lost: %q", out)
	}
}
