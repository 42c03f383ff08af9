package data

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/sswu-capstoneDesign2025/backend/internal/summarize"
)

const summaryKeyPrefix = "summary:"

type summaryCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *log.Helper
}

// NewSummaryCache backs the summarization pipeline's per-article cache with
// redis. Without a configured redis it degrades to a no-op cache.
func NewSummaryCache(data *Data, ttl time.Duration, logger log.Logger) summarize.Cache {
	if data.rdb == nil {
		return summarize.NopCache{}
	}
	return &summaryCache{rdb: data.rdb, ttl: ttl, log: log.NewHelper(logger)}
}

func (c *summaryCache) Get(ctx context.Context, url string) (string, bool) {
	val, err := c.rdb.Get(ctx, summaryKeyPrefix+url).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.log.Warnf("summary cache get failed: %v", err)
		return "", false
	}
	return val, true
}

func (c *summaryCache) Set(ctx context.Context, url, summary string) {
	if err := c.rdb.Set(ctx, summaryKeyPrefix+url, summary, c.ttl).Err(); err != nil {
		c.log.Warnf("summary cache set failed: %v", err)
	}
}
