package search

import (
	"context"
	"time"
)

// Searcher is the provider-neutral news search interface.
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request is one news search query.
type Request struct {
	Query      string
	MaxResults int
	Sort       string // "date" or "sim"
}

// Response holds a provider's results in the provider's ranking order.
type Response struct {
	Results []Result
}

// Result is a single news item.
type Result struct {
	Title       string
	URL         string
	PublishedAt time.Time
}
