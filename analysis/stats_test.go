package analysis

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestAnalyzeEmptyText(t *testing.T) {
	a := NewAnalyzer("", zap.NewNop())
	defer a.Close()

	stats := a.Analyze("")
	if stats.Chars != 0 || stats.Words != 0 {
		t.Errorf("empty text: chars=%d words=%d", stats.Chars, stats.Words)
	}
	if stats.VocabRichness != 0 {
		t.Errorf("empty text: vocab richness = %f", stats.VocabRichness)
	}
}

func TestAnalyzeCountsAndRichness(t *testing.T) {
	a := NewAnalyzer("", zap.NewNop())
	defer a.Close()

	stats := a.Analyze("The quick brown fox. The quick brown fox.")
	if stats.Words != 8 {
		t.Errorf("words = %d, want 8", stats.Words)
	}
	// 4 unique words out of 8.
	if stats.VocabRichness < 0.49 || stats.VocabRichness > 0.51 {
		t.Errorf("vocab richness = %f, want 0.5", stats.VocabRichness)
	}
	if stats.Chars == 0 {
		t.Error("chars must be counted")
	}
}

func TestAnalyzeQualityScoreOrdering(t *testing.T) {
	a := NewAnalyzer("", zap.NewNop())
	defer a.Close()

	sentence := "The extraction backend produced readable prose with varied vocabulary today. "
	long := strings.Repeat(sentence, 40)
	short := "word"

	longStats := a.Analyze(long)
	shortStats := a.Analyze(short)
	if longStats.QualityScore <= shortStats.QualityScore {
		t.Errorf("quality score of real prose (%f) must beat a single word (%f)",
			longStats.QualityScore, shortStats.QualityScore)
	}
}

func TestAnalyzeTokensOmittedWithoutTokenizer(t *testing.T) {
	a := NewAnalyzer("", zap.NewNop())
	defer a.Close()

	if stats := a.Analyze("some text"); stats.Tokens != 0 {
		t.Errorf("tokens = %d without a tokenizer", stats.Tokens)
	}
}

func TestNewAnalyzerBadTokenizerPath(t *testing.T) {
	// A missing tokenizer file disables token counting but never fails.
	a := NewAnalyzer("/no/such/tokenizer.json", zap.NewNop())
	defer a.Close()

	if stats := a.Analyze("some text"); stats == nil {
		t.Fatal("analyzer must still work without a tokenizer")
	}
}
