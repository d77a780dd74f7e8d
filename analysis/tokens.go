package analysis

import (
	"fmt"

	"github.com/daulet/tokenizers"
)

// TokenCounter counts tokens with a HuggingFace tokenizer file, so outputs
// can be compared by how many LLM tokens they would cost.
type TokenCounter struct {
	tokenizer *tokenizers.Tokenizer
}

func NewTokenCounter(tokenizerFilePath string) (*TokenCounter, error) {
	tokenizer, err := tokenizers.FromFile(tokenizerFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer from file: %w", err)
	}
	return &TokenCounter{tokenizer: tokenizer}, nil
}

func (c *TokenCounter) Count(text string) int {
	ids, _ := c.tokenizer.Encode(text, false)
	return len(ids)
}

func (c *TokenCounter) Close() {
	c.tokenizer.Close()
}
