package summarize

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sswu-capstoneDesign2025/backend/internal/article"
)

// Block is one article rendered into its labeled prompt form.
type Block struct {
	Index    int // position in the original article list
	URL      string
	Rendered string
	Tokens   int
}

// Chunk is a token-budget-bounded group of blocks sent to the model together.
type Chunk struct {
	Blocks []Block
	Tokens int
}

// Chunker packs article blocks into chunks that stay under a token ceiling
// kept well below the model's context limit.
type Chunker struct {
	encoding  *tiktoken.Tiktoken
	maxTokens int
}

// The ceiling leaves headroom under a 32k context for the instructions and
// the response.
const defaultChunkTokens = 28000

func NewChunker() (*Chunker, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	return &Chunker{encoding: enc, maxTokens: defaultChunkTokens}, nil
}

// CountTokens estimates the token count of a text.
func (c *Chunker) CountTokens(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}

// Chunk greedily packs the articles, preserving order. No article is split or
// duplicated; a single block over the ceiling becomes its own chunk since
// finer splitting is not worth the complexity.
func (c *Chunker) Chunk(records []article.Record) []Chunk {
	var chunks []Chunk
	var current Chunk

	for i, rec := range records {
		rendered := fmt.Sprintf("=== 기사 %d (%s) ===\n%s\n", i+1, rec.URL, rec.Text)
		block := Block{Index: i, URL: rec.URL, Rendered: rendered, Tokens: c.CountTokens(rendered)}

		if len(current.Blocks) > 0 && current.Tokens+block.Tokens > c.maxTokens {
			chunks = append(chunks, current)
			current = Chunk{}
		}
		current.Blocks = append(current.Blocks, block)
		current.Tokens += block.Tokens
	}
	if len(current.Blocks) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}
