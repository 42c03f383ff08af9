package summarize

import "context"

// Cache stores finished per-article summaries keyed by article URL, so a
// repeatedly requested article is not re-summarized. Implementations decide
// the eviction policy; lookups and stores are best-effort.
type Cache interface {
	Get(ctx context.Context, url string) (string, bool)
	Set(ctx context.Context, url, summary string)
}

// NopCache disables caching.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (string, bool) { return "", false }
func (NopCache) Set(context.Context, string, string)        {}
