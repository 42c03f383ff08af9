package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sswu-capstoneDesign2025/backend/internal/geo"
	"github.com/sswu-capstoneDesign2025/backend/internal/keyword"
	"github.com/sswu-capstoneDesign2025/backend/internal/timeexpr"
	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// KeywordSearcher fans a keyword list out to the underlying search provider
// and joins the results back into a keyword-keyed map.
type KeywordSearcher struct {
	searcher Searcher
	vocab    *keyword.Vocab
	geo      *geo.Hierarchy
	refiner  *Refiner
	now      func() time.Time
}

func NewKeywordSearcher(searcher Searcher, vocab *keyword.Vocab, hierarchy *geo.Hierarchy, refiner *Refiner) *KeywordSearcher {
	return &KeywordSearcher{
		searcher: searcher,
		vocab:    vocab,
		geo:      hierarchy,
		refiner:  refiner,
		now:      time.Now,
	}
}

// Search issues every keyword concurrently and returns URL lists keyed by
// keyword. A failed query contributes an empty list; Search itself never
// fails.
func (s *KeywordSearcher) Search(ctx context.Context, keywords []string, maxPerKeyword int) map[string][]string {
	if maxPerKeyword <= 0 {
		maxPerKeyword = 3
	}

	results := make(map[string][]string, len(keywords))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, kw := range keywords {
		wg.Add(1)
		go func(kw string) {
			defer wg.Done()
			urls := s.searchOne(ctx, kw, maxPerKeyword)
			mu.Lock()
			results[kw] = urls
			mu.Unlock()
		}(kw)
	}
	wg.Wait()

	return results
}

func (s *KeywordSearcher) searchOne(ctx context.Context, kw string, max int) []string {
	var items []Result
	if loc := s.locationToken(kw); loc != "" {
		items = s.searchLocationVariants(ctx, kw, loc, max)
	} else {
		query := s.refiner.Refine(kw, s.vocab.DomainOf(kw))
		items = s.query(ctx, query, max)
	}

	if day, ok := timeexpr.DateFilter(kw, s.now()); ok && timeexpr.Mentioned(kw) {
		items = filterByDate(items, day)
	}

	urls := make([]string, 0, len(items))
	for _, item := range items {
		if item.URL != "" {
			urls = append(urls, item.URL)
		}
		if len(urls) == max {
			break
		}
	}
	return urls
}

// searchLocationVariants runs one query per location-chain entry, all
// concurrently, and keeps the first variant in specificity order that returned
// anything. A broader variant finishing earlier never wins over a more
// specific one that also has results.
func (s *KeywordSearcher) searchLocationVariants(ctx context.Context, kw, loc string, max int) []Result {
	variants := s.geo.Expand(loc)
	byVariant := make([][]Result, len(variants))

	var wg sync.WaitGroup
	for i, variant := range variants {
		wg.Add(1)
		go func(i int, variant string) {
			defer wg.Done()
			query := strings.Replace(kw, loc, variant, 1)
			query = s.refiner.Refine(query, keyword.DomainLocation)
			byVariant[i] = s.query(ctx, query, max)
		}(i, variant)
	}
	wg.Wait()

	for _, res := range byVariant {
		if len(res) > 0 {
			return res
		}
	}
	return nil
}

// locationToken returns the first token of the keyword that names a known
// place, either via the curated vocabulary or the hierarchy mapping.
func (s *KeywordSearcher) locationToken(kw string) string {
	for _, tok := range strings.Fields(kw) {
		if s.vocab.IsLocation(tok) || s.geo.Known(tok) {
			return tok
		}
	}
	return ""
}

func (s *KeywordSearcher) query(ctx context.Context, query string, max int) []Result {
	resp, err := s.searcher.Search(ctx, &Request{Query: query, MaxResults: max, Sort: "date"})
	if err != nil {
		logger.Log.Warnf("news search failed [%s]: %v", query, err)
		return nil
	}
	return resp.Results
}

func filterByDate(items []Result, day time.Time) []Result {
	var out []Result
	for _, item := range items {
		if item.PublishedAt.IsZero() {
			continue
		}
		y1, m1, d1 := item.PublishedAt.Date()
		y2, m2, d2 := day.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			out = append(out, item)
		}
	}
	return out
}
