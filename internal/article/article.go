package article

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"

	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// Record is one fetched article that survived relevance filtering.
type Record struct {
	URL  string
	Text string
}

// Fetcher retrieves article text for candidate URLs and keeps the ones that
// are actually about the keyword.
type Fetcher struct {
	timeout  time.Duration
	maxChars int
	fetch    func(url string, timeout time.Duration) (string, error)
}

const (
	defaultFetchTimeout = 10 * time.Second
	defaultMaxChars     = 6000

	// acceptTarget is the early-exit point, not a guarantee: fewer articles
	// are fine when the candidates run out.
	acceptTarget = 3
)

func NewFetcher() *Fetcher {
	return &Fetcher{
		timeout:  defaultFetchTimeout,
		maxChars: defaultMaxChars,
		fetch:    fetchReadable,
	}
}

func fetchReadable(url string, timeout time.Duration) (string, error) {
	art, err := readability.FromURL(url, timeout)
	if err != nil {
		return "", err
	}
	return art.TextContent, nil
}

// Relevance counts how many whitespace-delimited tokens of the keyword occur
// anywhere in the article text, case-insensitively. Zero means the article is
// not about the keyword.
func Relevance(text, kw string) int {
	lowered := strings.ToLower(text)
	score := 0
	for _, tok := range strings.Fields(kw) {
		if strings.Contains(lowered, strings.ToLower(tok)) {
			score++
		}
	}
	return score
}

// CollectRelevant walks the candidate URLs in order, fetching and scoring
// each, and stops once acceptTarget articles are accepted. Fetch failures and
// empty bodies count the same as zero relevance: the candidate is skipped.
func (f *Fetcher) CollectRelevant(ctx context.Context, urls []string, kw string) []Record {
	var out []Record
	for _, u := range urls {
		select {
		case <-ctx.Done():
			return out
		default:
		}

		text, err := f.fetch(u, f.timeout)
		if err != nil {
			logger.Log.Warnf("article fetch failed [%s]: %v", u, err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if len(text) > f.maxChars {
			cut := f.maxChars
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			text = text[:cut]
		}
		if Relevance(text, kw) == 0 {
			continue
		}

		out = append(out, Record{URL: u, Text: text})
		if len(out) >= acceptTarget {
			break
		}
	}
	return out
}
