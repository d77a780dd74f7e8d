package analysis

import (
	"strings"
	"testing"
)

func TestExtractKeywordsBasic(t *testing.T) {
	text := `Neural networks and long short term memory models are used for
	sequence labeling. Neural networks require training data and careful
	hyperparameter tuning before the models converge.`

	rake := NewRAKEExtractor()
	keywords := rake.ExtractKeywords(text, 5)
	if len(keywords) == 0 {
		t.Fatal("expected keywords from non-trivial text")
	}
	if len(keywords) > 5 {
		t.Fatalf("topK not honored: got %d keywords", len(keywords))
	}

	joined := strings.Join(keywords, " | ")
	if !strings.Contains(joined, "neural networks") {
		t.Errorf("expected 'neural networks' among keywords, got %s", joined)
	}
	for _, kw := range keywords {
		for _, stop := range []string{"the", "and", "are"} {
			for _, word := range strings.Fields(kw) {
				if word == stop {
					t.Errorf("keyword %q contains stop word %q", kw, stop)
				}
			}
		}
	}
}

func TestExtractKeywordsEmptyText(t *testing.T) {
	rake := NewRAKEExtractor()
	if keywords := rake.ExtractKeywords("", 5); keywords != nil {
		t.Errorf("expected no keywords, got %v", keywords)
	}
}

func TestExtractKeywordsStemDeduplication(t *testing.T) {
	// Singular and plural of the same phrase must not both be selected.
	text := strings.Repeat("extraction method works. extraction methods work. ", 5)

	rake := NewRAKEExtractor()
	keywords := rake.ExtractKeywords(text, 10)

	seen := 0
	for _, kw := range keywords {
		if strings.HasPrefix(kw, "extraction method") {
			seen++
		}
	}
	if seen > 1 {
		t.Errorf("stemmed duplicates not collapsed: %v", keywords)
	}
}

func TestStemWordFallback(t *testing.T) {
	if got := stemWord("running"); got != "run" {
		t.Errorf("stemWord(running) = %q", got)
	}
}
