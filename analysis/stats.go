package analysis

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// OutputStats summarizes one extraction output so methods can be compared
// beyond raw timing.
type OutputStats struct {
	Chars             int      `json:"chars"`
	Words             int      `json:"words"`
	Sentences         int      `json:"sentences"`
	VocabRichness     float64  `json:"vocab_richness"`
	AvgSentenceLength float64  `json:"avg_sentence_length"`
	QualityScore      float64  `json:"quality_score"`
	Keywords          []string `json:"keywords,omitempty"`
	Tokens            int      `json:"tokens,omitempty"`
}

// Analyzer computes OutputStats for extraction outputs. The token counter is
// optional; when no tokenizer file is configured, token counts are omitted.
type Analyzer struct {
	rake    *RAKEExtractor
	counter *TokenCounter
	logger  *zap.Logger
}

func NewAnalyzer(tokenizerFilePath string, logger *zap.Logger) *Analyzer {
	a := &Analyzer{
		rake:   NewRAKEExtractor(),
		logger: logger,
	}
	if tokenizerFilePath != "" {
		counter, err := NewTokenCounter(tokenizerFilePath)
		if err != nil {
			logger.Warn("token counting disabled",
				zap.String("tokenizer_file", tokenizerFilePath),
				zap.Error(err))
		} else {
			a.counter = counter
		}
	}
	return a
}

// Close releases the tokenizer, if one was loaded.
func (a *Analyzer) Close() {
	if a.counter != nil {
		a.counter.Close()
	}
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// Analyze computes comparison statistics for one extraction output.
func (a *Analyzer) Analyze(text string) *OutputStats {
	words := strings.Fields(text)
	wordCount := len(words)

	unique := make(map[string]struct{}, wordCount)
	for _, w := range words {
		w = strings.ToLower(strings.Trim(w, ".,!?\"'():;[]{}"))
		if w != "" {
			unique[w] = struct{}{}
		}
	}
	var vocabRichness float64
	if wordCount > 0 {
		vocabRichness = float64(len(unique)) / float64(wordCount)
	}

	sentences := sentenceSplitRe.Split(text, -1)
	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		sentenceCount = 1
	}
	avgSentenceLength := float64(wordCount) / float64(sentenceCount)

	stats := &OutputStats{
		Chars:             len(text),
		Words:             wordCount,
		Sentences:         sentenceCount,
		VocabRichness:     vocabRichness,
		AvgSentenceLength: avgSentenceLength,
		QualityScore: qualityScore(
			lengthScore(wordCount),
			richnessScore(vocabRichness),
			sentenceScore(sentenceCount, avgSentenceLength),
		),
		Keywords: a.rake.ExtractKeywords(text, 10),
	}

	if a.counter != nil {
		stats.Tokens = a.counter.Count(text)
	}

	return stats
}

func lengthScore(wordCount int) float64 {
	switch {
	case wordCount < 200:
		return 0.0
	case wordCount > 10000:
		return 0.7
	default:
		return 1.0
	}
}

func richnessScore(vocabRichness float64) float64 {
	switch {
	case vocabRichness < 0.25:
		return 0.0
	case vocabRichness > 0.6:
		return 0.8
	default:
		return 1.0
	}
}

func sentenceScore(sentenceCount int, avgSentenceLength float64) float64 {
	if sentenceCount < 5 {
		return 0.0
	}
	if avgSentenceLength < 10 || avgSentenceLength > 30 {
		return 0.7
	}
	return 1.0
}

func qualityScore(length, richness, sentence float64) float64 {
	return (0.50*length + 0.30*richness + 0.20*sentence) * 100
}
