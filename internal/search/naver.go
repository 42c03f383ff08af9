package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const naverEndpoint = "https://openapi.naver.com/v1/search/news.json"

// NaverClient queries the Naver News Open API.
type NaverClient struct {
	clientID     string
	clientSecret string
	client       *http.Client
}

func NewNaverClient(clientID, clientSecret string) *NaverClient {
	return &NaverClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Searcher = (*NaverClient)(nil)

type naverResponse struct {
	Items []naverItem `json:"items"`
}

type naverItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	PubDate      string `json:"pubDate"`
}

// Search implements Searcher.
func (c *NaverClient) Search(ctx context.Context, req *Request) (*Response, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, fmt.Errorf("naver api credentials are missing")
	}

	display := req.MaxResults
	if display <= 0 {
		display = 10
	}
	sort := req.Sort
	if sort == "" {
		sort = "date"
	}

	q := url.Values{}
	q.Set("query", req.Query)
	q.Set("display", strconv.Itoa(display))
	q.Set("sort", sort)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, naverEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("X-Naver-Client-Id", c.clientID)
	httpReq.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver api error (status %d): %s", res.StatusCode, string(body))
	}

	var parsed naverResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	results := make([]Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		link := item.OriginalLink
		if link == "" {
			link = item.Link
		}
		pub, _ := time.Parse(time.RFC1123Z, item.PubDate)
		results = append(results, Result{
			Title:       stripTags(item.Title),
			URL:         link,
			PublishedAt: pub,
		})
	}
	return &Response{Results: results}, nil
}

// Naver titles carry <b> highlight markup around matched terms.
func stripTags(s string) string {
	r := strings.NewReplacer("<b>", "", "</b>", "", "&quot;", `"`, "&amp;", "&", "&lt;", "<", "&gt;", ">")
	return r.Replace(s)
}
