package summarize

import (
	"testing"

	"github.com/sswu-capstoneDesign2025/backend/internal/article"
)

func newTestChunker(t *testing.T, maxTokens int) *Chunker {
	t.Helper()
	c, err := NewChunker()
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	if maxTokens > 0 {
		c.maxTokens = maxTokens
	}
	return c
}

func TestChunkPreservesEveryArticleOnce(t *testing.T) {
	c := newTestChunker(t, 0)
	records := []article.Record{
		{URL: "http://a", Text: "첫 번째 기사 본문입니다."},
		{URL: "http://b", Text: "두 번째 기사 본문입니다."},
		{URL: "http://c", Text: "세 번째 기사 본문입니다."},
	}

	chunks := c.Chunk(records)

	seen := map[string]int{}
	for _, chunk := range chunks {
		for _, block := range chunk.Blocks {
			seen[block.URL]++
		}
	}
	for _, rec := range records {
		if seen[rec.URL] != 1 {
			t.Errorf("url %s appeared %d times, want 1", rec.URL, seen[rec.URL])
		}
	}
}

func TestChunkRespectsTokenCeiling(t *testing.T) {
	c := newTestChunker(t, 60)
	long := "서울에서 열린 행사에 많은 사람들이 모였습니다. 주최 측은 내년에도 행사를 이어가겠다고 밝혔습니다."
	records := []article.Record{
		{URL: "http://a", Text: long},
		{URL: "http://b", Text: long},
		{URL: "http://c", Text: long},
	}

	chunks := c.Chunk(records)

	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want the ceiling to force a split", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk.Blocks) > 1 && chunk.Tokens > c.maxTokens {
			t.Errorf("chunk %d has %d tokens over ceiling %d", i, chunk.Tokens, c.maxTokens)
		}
	}
}

func TestChunkOversizedArticleGetsOwnChunk(t *testing.T) {
	c := newTestChunker(t, 20)
	records := []article.Record{
		{URL: "http://small", Text: "짧은 기사."},
		{URL: "http://big", Text: "이 기사는 혼자서도 한도를 넘길 만큼 길게 이어지는 본문을 가지고 있어서 분리되어야 합니다."},
		{URL: "http://small2", Text: "또 짧은 기사."},
	}

	chunks := c.Chunk(records)

	for _, chunk := range chunks {
		for _, block := range chunk.Blocks {
			if block.URL == "http://big" && len(chunk.Blocks) != 1 {
				t.Errorf("oversized article shares a chunk with %d others", len(chunk.Blocks)-1)
			}
		}
	}
}

func TestChunkOrderAndIndex(t *testing.T) {
	c := newTestChunker(t, 0)
	records := []article.Record{
		{URL: "http://a", Text: "가"},
		{URL: "http://b", Text: "나"},
	}

	chunks := c.Chunk(records)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	for i, block := range chunks[0].Blocks {
		if block.Index != i {
			t.Errorf("block %d has index %d", i, block.Index)
		}
	}
}
