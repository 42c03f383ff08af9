package biz

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/sswu-capstoneDesign2025/backend/internal/article"
	"github.com/sswu-capstoneDesign2025/backend/internal/keyword"
	"github.com/sswu-capstoneDesign2025/backend/internal/search"
	"github.com/sswu-capstoneDesign2025/backend/internal/summarize"
)

// NewsHistory is one past answered news question.
type NewsHistory struct {
	ID       int
	Username string
	Keyword  string
	Summary  string
	Date     time.Time
}

type NewsRepo interface {
	SaveHistory(ctx context.Context, h *NewsHistory) error
	ListHistory(ctx context.Context, username string) ([]*NewsHistory, error)
}

// NewsResult is the full outcome of one news question.
type NewsResult struct {
	Keywords  []string
	URLs      map[string][]string
	Summaries []string
	Combined  string
}

const (
	newsTopKeywords   = 3
	newsURLPerKeyword = 5
)

// NewsUseCase composes the news pipeline end to end: keyword extraction,
// search, article fetch and filtering, summarization, history persistence.
type NewsUseCase struct {
	extractor  *keyword.Extractor
	searcher   *search.KeywordSearcher
	fetcher    *article.Fetcher
	summarizer *summarize.Pipeline
	repo       NewsRepo
	log        *log.Helper
}

func NewNewsUseCase(
	extractor *keyword.Extractor,
	searcher *search.KeywordSearcher,
	fetcher *article.Fetcher,
	summarizer *summarize.Pipeline,
	repo NewsRepo,
	logger log.Logger,
) *NewsUseCase {
	return &NewsUseCase{
		extractor:  extractor,
		searcher:   searcher,
		fetcher:    fetcher,
		summarizer: summarizer,
		repo:       repo,
		log:        log.NewHelper(logger),
	}
}

// SearchURLs extracts keywords from the question and returns news URLs per
// keyword without summarizing.
func (uc *NewsUseCase) SearchURLs(ctx context.Context, text string) ([]string, map[string][]string) {
	keywords := uc.extractor.Extract(ctx, text, newsTopKeywords)
	urls := uc.searcher.Search(ctx, keywords, newsURLPerKeyword)
	return keywords, urls
}

// SummarizeURLs fetches the given articles and runs the summarization
// pipeline over the relevant ones.
func (uc *NewsUseCase) SummarizeURLs(ctx context.Context, urls []string, kw string) summarize.Result {
	records := uc.fetcher.CollectRelevant(ctx, urls, kw)
	return uc.summarizer.SummarizeAndCombine(ctx, records)
}

// Run answers a news question end to end. History is saved when a username
// is present; a persistence failure degrades to a log line since the user
// already has their answer.
func (uc *NewsUseCase) Run(ctx context.Context, text, username string) (*NewsResult, error) {
	keywords, urls := uc.SearchURLs(ctx, text)

	var records []article.Record
	kw := strings.Join(keywords, " ")
	for _, keywordURLs := range urls {
		records = append(records, uc.fetcher.CollectRelevant(ctx, keywordURLs, kw)...)
	}
	uc.log.Infof("news pipeline: %d keywords, %d relevant articles", len(keywords), len(records))

	result := uc.summarizer.SummarizeAndCombine(ctx, records)

	if username != "" {
		h := &NewsHistory{
			Username: username,
			Keyword:  kw,
			Summary:  result.Combined,
			Date:     time.Now(),
		}
		if err := uc.repo.SaveHistory(ctx, h); err != nil {
			uc.log.Warnf("saving news history failed: %v", err)
		}
	}

	return &NewsResult{
		Keywords:  keywords,
		URLs:      urls,
		Summaries: result.Summaries,
		Combined:  result.Combined,
	}, nil
}

func (uc *NewsUseCase) History(ctx context.Context, username string) ([]*NewsHistory, error) {
	return uc.repo.ListHistory(ctx, username)
}

// SaveHistoryEntry records an externally produced summary, serving the
// standalone history endpoint.
func (uc *NewsUseCase) SaveHistoryEntry(ctx context.Context, username, kw, summary string) error {
	return uc.repo.SaveHistory(ctx, &NewsHistory{
		Username: username,
		Keyword:  kw,
		Summary:  summary,
		Date:     time.Now(),
	})
}
