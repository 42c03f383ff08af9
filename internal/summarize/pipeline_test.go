package summarize

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/sswu-capstoneDesign2025/backend/internal/article"
)

type scriptedRule struct {
	needle string
	answer string
}

// scriptedLLM answers with the first rule whose needle appears in the user
// prompt.
type scriptedLLM struct {
	mu    sync.Mutex
	rules []scriptedRule
	err   error
	calls []string
}

func (s *scriptedLLM) Complete(_ context.Context, _ string, user string, _ float32, _ int) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, user)
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	for _, rule := range s.rules {
		if strings.Contains(user, rule.needle) {
			return rule.answer, nil
		}
	}
	return `{"summaries": []}`, nil
}

type memoryCache struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemoryCache() *memoryCache { return &memoryCache{m: map[string]string{}} }

func (c *memoryCache) Get(_ context.Context, url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[url]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, url, summary string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[url] = summary
}

func TestSummarizeDropsUnparseableChunkKeepsOrder(t *testing.T) {
	// One article per chunk so the middle chunk can fail alone.
	chunker := newTestChunker(t, 1)
	llm := &scriptedLLM{rules: []scriptedRule{
		{"요약 목록", `{"combined": "물가와 날씨 이야기였어요. 이상이 오늘의 뉴스입니다."}`},
		{"물가", `{"summaries": ["물가 요약"]}`},
		{"선거", "죄송하지만 요약할 수 없어요"},
		{"날씨", "```json" + "\n" + `{"summaries": ["날씨 요약"]}` + "\n" + "```"},
	}}
	p := NewPipeline(llm, chunker, nil)

	res := p.SummarizeAndCombine(context.Background(), []article.Record{
		{URL: "http://a", Text: "물가 관련 기사"},
		{URL: "http://b", Text: "선거 관련 기사"},
		{URL: "http://c", Text: "날씨 관련 기사"},
	})

	want := []string{"물가 요약", "날씨 요약"}
	if len(res.Summaries) != len(want) {
		t.Fatalf("got %d summaries %v, want %v", len(res.Summaries), res.Summaries, want)
	}
	for i := range want {
		if res.Summaries[i] != want[i] {
			t.Errorf("summary[%d] = %q, want %q", i, res.Summaries[i], want[i])
		}
	}
	if !strings.Contains(res.Combined, "이상이 오늘의 뉴스입니다") {
		t.Errorf("combined missing closing sentence: %q", res.Combined)
	}
}

func TestSummarizeCombineFailureUsesApology(t *testing.T) {
	chunker := newTestChunker(t, 1)
	llm := &scriptedLLM{rules: []scriptedRule{
		{"요약 목록", "통합 결과를 만들지 못했어요"},
		{"물가", `{"summaries": ["물가 요약"]}`},
	}}
	p := NewPipeline(llm, chunker, nil)

	res := p.SummarizeAndCombine(context.Background(), []article.Record{
		{URL: "http://a", Text: "물가 관련 기사"},
	})

	if res.Combined != combineFailureMessage {
		t.Errorf("combined = %q, want apology", res.Combined)
	}
	if len(res.Summaries) != 1 {
		t.Errorf("summaries should survive a combine failure, got %v", res.Summaries)
	}
}

func TestSummarizeAllChunksFailShortCircuits(t *testing.T) {
	chunker := newTestChunker(t, 1)
	llm := &scriptedLLM{rules: []scriptedRule{
		{"기사", "요약 실패"},
	}}
	p := NewPipeline(llm, chunker, nil)

	res := p.SummarizeAndCombine(context.Background(), []article.Record{
		{URL: "http://a", Text: "기사 하나"},
	})

	if res.Combined != noArticlesMessage {
		t.Errorf("combined = %q, want %q", res.Combined, noArticlesMessage)
	}
	if len(res.Summaries) != 0 {
		t.Errorf("summaries = %v, want empty", res.Summaries)
	}
	for _, call := range llm.calls {
		if strings.Contains(call, "요약 목록") {
			t.Error("combine should not run when nothing was summarized")
		}
	}
}

func TestSummarizeNoArticlesShortCircuits(t *testing.T) {
	chunker := newTestChunker(t, 0)
	llm := &scriptedLLM{}
	p := NewPipeline(llm, chunker, nil)

	res := p.SummarizeAndCombine(context.Background(), nil)

	if res.Combined != noArticlesMessage {
		t.Errorf("combined = %q, want %q", res.Combined, noArticlesMessage)
	}
	if len(llm.calls) != 0 {
		t.Errorf("model called %d times for empty input", len(llm.calls))
	}
}

func TestSummarizeUsesAndFillsCache(t *testing.T) {
	chunker := newTestChunker(t, 1)
	cache := newMemoryCache()
	cache.Set(context.Background(), "http://a", "캐시된 요약")
	llm := &scriptedLLM{rules: []scriptedRule{
		{"요약 목록", `{"combined": "이야기였어요. 이상이 오늘의 뉴스입니다."}`},
		{"날씨", `{"summaries": ["날씨 요약"]}`},
	}}
	p := NewPipeline(llm, chunker, cache)

	res := p.SummarizeAndCombine(context.Background(), []article.Record{
		{URL: "http://a", Text: "물가 관련 기사"},
		{URL: "http://c", Text: "날씨 관련 기사"},
	})

	if len(res.Summaries) != 2 || res.Summaries[0] != "캐시된 요약" {
		t.Fatalf("summaries = %v, want cached first", res.Summaries)
	}
	for _, call := range llm.calls {
		if strings.Contains(call, "물가") {
			t.Error("cached article was sent to the model")
		}
	}
	if got, ok := cache.Get(context.Background(), "http://c"); !ok || got != "날씨 요약" {
		t.Errorf("cache for http://c = %q, %v", got, ok)
	}
}
