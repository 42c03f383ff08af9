package search

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sswu-capstoneDesign2025/backend/internal/geo"
	"github.com/sswu-capstoneDesign2025/backend/internal/keyword"
)

// fakeSearcher records queries and answers from a canned table keyed by
// substring match.
type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
	answers map[string][]Result
}

func (f *fakeSearcher) Search(_ context.Context, req *Request) (*Response, error) {
	f.mu.Lock()
	f.queries = append(f.queries, req.Query)
	f.mu.Unlock()

	for needle, results := range f.answers {
		if strings.Contains(req.Query, needle) {
			return &Response{Results: results}, nil
		}
	}
	return &Response{}, nil
}

func newTestKeywordSearcher(f *fakeSearcher) *KeywordSearcher {
	hierarchy := geo.New(map[string][]string{"서울": {}})
	return NewKeywordSearcher(f, keyword.NewVocab(), hierarchy, NewRefiner(1))
}

func TestSearchLocationAndGeneralBranches(t *testing.T) {
	t.Parallel()

	fake := &fakeSearcher{answers: map[string][]Result{
		"서울": {{URL: "https://news.example/seoul-1"}},
		"안녕": {{URL: "https://news.example/hello-1"}},
	}}
	s := newTestKeywordSearcher(fake)

	got := s.Search(context.Background(), []string{"서울", "안녕"}, 3)

	if len(got) != 2 {
		t.Fatalf("expected results for both keywords, got %v", got)
	}
	if len(got["서울"]) != 1 || got["서울"][0] != "https://news.example/seoul-1" {
		t.Fatalf("location branch result = %v", got["서울"])
	}
	if len(got["안녕"]) != 1 || got["안녕"][0] != "https://news.example/hello-1" {
		t.Fatalf("general branch result = %v", got["안녕"])
	}

	// The location keyword expands to the full chain, so both the specific
	// and the country-level variant must have been queried.
	var sawSeoul, sawRoot bool
	for _, q := range fake.queries {
		if strings.Contains(q, "서울") {
			sawSeoul = true
		}
		if strings.Contains(q, geo.Root) {
			sawRoot = true
		}
	}
	if !sawSeoul || !sawRoot {
		t.Fatalf("expected queries for every chain variant, got %v", fake.queries)
	}
}

func TestSearchVariantPriorityBeatsArrivalOrder(t *testing.T) {
	t.Parallel()

	// Both variants answer, so the more specific one must win regardless of
	// which goroutine finishes first.
	fake := &fakeSearcher{answers: map[string][]Result{
		"서울":     {{URL: "https://news.example/specific"}},
		geo.Root: {{URL: "https://news.example/broad"}},
	}}
	s := newTestKeywordSearcher(fake)

	got := s.Search(context.Background(), []string{"서울"}, 3)
	if len(got["서울"]) != 1 || got["서울"][0] != "https://news.example/specific" {
		t.Fatalf("expected the specific variant to win, got %v", got["서울"])
	}
}

func TestSearchFallsBackToBroaderVariant(t *testing.T) {
	t.Parallel()

	fake := &fakeSearcher{answers: map[string][]Result{
		geo.Root: {{URL: "https://news.example/broad"}},
	}}
	s := newTestKeywordSearcher(fake)

	got := s.Search(context.Background(), []string{"서울"}, 3)
	if len(got["서울"]) != 1 || got["서울"][0] != "https://news.example/broad" {
		t.Fatalf("expected the broader variant result, got %v", got["서울"])
	}
}

func TestSearchDateFilterDropsOtherDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	fake := &fakeSearcher{answers: map[string][]Result{
		"삼성": {
			{URL: "https://news.example/today", PublishedAt: now},
			{URL: "https://news.example/old", PublishedAt: now.AddDate(0, 0, -4)},
		},
	}}
	s := newTestKeywordSearcher(fake)
	s.now = func() time.Time { return now }

	got := s.Search(context.Background(), []string{"오늘 삼성"}, 3)
	urls := got["오늘 삼성"]
	if len(urls) != 1 || urls[0] != "https://news.example/today" {
		t.Fatalf("date filter should keep only the matching day, got %v", urls)
	}
}

func TestSearchDateFilterCanEmpty(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	fake := &fakeSearcher{answers: map[string][]Result{
		"삼성": {{URL: "https://news.example/old", PublishedAt: now.AddDate(0, 0, -4)}},
	}}
	s := newTestKeywordSearcher(fake)
	s.now = func() time.Time { return now }

	got := s.Search(context.Background(), []string{"오늘 삼성"}, 3)
	if len(got["오늘 삼성"]) != 0 {
		t.Fatalf("filtered-out results must not fall back to unfiltered ones, got %v", got)
	}
}

func TestRefinerDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	a := NewRefiner(42)
	b := NewRefiner(42)
	for i := 0; i < 10; i++ {
		qa := a.Refine("삼성", keyword.DomainEconomy)
		qb := b.Refine("삼성", keyword.DomainEconomy)
		if qa != qb {
			t.Fatalf("same seed must give the same template sequence: %q vs %q", qa, qb)
		}
		if !strings.Contains(qa, "삼성") {
			t.Fatalf("refined query must contain the keyword: %q", qa)
		}
	}
}
