package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kljensen/snowball"
)

type KeywordScore struct {
	Keyword string
	Score   float64
}

// RAKEExtractor scores candidate keyword phrases by word degree/frequency.
// Phrases that stem to the same form are deduplicated.
type RAKEExtractor struct {
	stopWords     map[string]bool
	punctuation   *regexp.Regexp
	wordSeparator *regexp.Regexp
}

func NewRAKEExtractor() *RAKEExtractor {
	stopWords := map[string]bool{
		"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
		"be": true, "been": true, "by": true, "for": true, "from": true, "has": true,
		"he": true, "in": true, "is": true, "it": true, "its": true, "of": true,
		"on": true, "that": true, "the": true, "to": true, "was": true, "will": true,
		"with": true, "would": true, "could": true, "should": true, "may": true,
		"might": true, "can": true, "must": true, "shall": true, "this": true,
		"these": true, "they": true, "them": true, "their": true, "there": true,
		"then": true, "than": true, "or": true, "but": true, "not": true, "no": true,
		"nor": true, "so": true, "yet": true, "however": true, "therefore": true,
		"thus": true, "hence": true, "because": true, "since": true, "although": true,
		"though": true, "unless": true, "until": true, "while": true, "where": true,
		"when": true, "who": true, "whom": true, "whose": true, "which": true,
		"what": true, "why": true, "how": true, "if": true, "do": true, "does": true,
		"did": true, "have": true, "had": true, "having": true,
	}

	return &RAKEExtractor{
		stopWords:     stopWords,
		punctuation:   regexp.MustCompile(`[^\w\s]`),
		wordSeparator: regexp.MustCompile(`\s+`),
	}
}

func (r *RAKEExtractor) extractCandidatePhrases(text string) []string {
	text = strings.ToLower(text)
	text = r.punctuation.ReplaceAllString(text, " ")
	text = r.wordSeparator.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	words := strings.Fields(text)

	var phrases []string
	var currentPhrase []string

	for _, word := range words {
		if r.stopWords[word] {
			if len(currentPhrase) > 0 {
				phrases = append(phrases, strings.Join(currentPhrase, " "))
				currentPhrase = nil
			}
		} else if len(word) >= 2 {
			currentPhrase = append(currentPhrase, word)
		}
	}
	if len(currentPhrase) > 0 {
		phrases = append(phrases, strings.Join(currentPhrase, " "))
	}

	return phrases
}

func (r *RAKEExtractor) calculateWordScores(phrases []string) map[string]float64 {
	wordFreq := make(map[string]int)
	wordDegree := make(map[string]int)

	for _, phrase := range phrases {
		words := strings.Fields(phrase)
		phraseLength := len(words)

		for _, word := range words {
			wordFreq[word]++
			wordDegree[word] += phraseLength - 1
		}
	}

	wordScores := make(map[string]float64)
	for word, freq := range wordFreq {
		degree := wordDegree[word]
		wordScores[word] = float64(degree+freq) / float64(freq)
	}

	return wordScores
}

func (r *RAKEExtractor) scoreKeywordPhrases(phrases []string, wordScores map[string]float64) []KeywordScore {
	var keywordScores []KeywordScore

	for _, phrase := range phrases {
		var phraseScore float64
		for _, word := range strings.Fields(phrase) {
			phraseScore += wordScores[word]
		}
		if phraseScore > 0 {
			keywordScores = append(keywordScores, KeywordScore{
				Keyword: phrase,
				Score:   phraseScore,
			})
		}
	}

	sort.SliceStable(keywordScores, func(i, j int) bool {
		return keywordScores[i].Score > keywordScores[j].Score
	})

	return keywordScores
}

// ExtractKeywords returns up to topK highest-scoring phrases. Phrases whose
// stemmed form was already selected are skipped, so "extraction method" and
// "extraction methods" count once.
func (r *RAKEExtractor) ExtractKeywords(text string, topK int) []string {
	phrases := r.extractCandidatePhrases(text)
	if len(phrases) == 0 {
		return nil
	}

	wordScores := r.calculateWordScores(phrases)
	keywordScores := r.scoreKeywordPhrases(phrases, wordScores)

	var keywords []string
	seen := make(map[string]bool)
	for _, ks := range keywordScores {
		if len(keywords) >= topK {
			break
		}
		stemmed := stemPhrase(ks.Keyword)
		if seen[stemmed] {
			continue
		}
		seen[stemmed] = true
		keywords = append(keywords, ks.Keyword)
	}

	return keywords
}

func stemPhrase(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = stemWord(w)
	}
	return strings.Join(words, " ")
}

func stemWord(word string) string {
	stem, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stem
}
