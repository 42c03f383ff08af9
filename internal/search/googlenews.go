package search

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
)

// GoogleNewsClient searches Google News through its RSS search feed. It needs
// no credentials, which makes it the fallback provider in deployments without
// a Naver API application.
type GoogleNewsClient struct {
	parser *gofeed.Parser
	hl     string
	gl     string
	ceid   string
}

func NewGoogleNewsClient() *GoogleNewsClient {
	parser := gofeed.NewParser()
	parser.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	return &GoogleNewsClient{
		parser: parser,
		hl:     "ko",
		gl:     "KR",
		ceid:   "KR:ko",
	}
}

var _ Searcher = (*GoogleNewsClient)(nil)

// Search implements Searcher.
func (c *GoogleNewsClient) Search(ctx context.Context, req *Request) (*Response, error) {
	feedURL := fmt.Sprintf(
		"https://news.google.com/rss/search?q=%s&hl=%s&gl=%s&ceid=%s",
		url.QueryEscape(req.Query), c.hl, c.gl, url.QueryEscape(c.ceid),
	)

	feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	limit := req.MaxResults
	if limit <= 0 {
		limit = 10
	}

	results := make([]Result, 0, limit)
	for _, item := range feed.Items {
		if len(results) >= limit {
			break
		}
		var pub time.Time
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		}
		results = append(results, Result{
			Title:       item.Title,
			URL:         item.Link,
			PublishedAt: pub,
		})
	}
	return &Response{Results: results}, nil
}
