package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/finbook/bookkeeper/internal/model"
	"github.com/finbook/bookkeeper/pkg/logger"
	"github.com/finbook/bookkeeper/pkg/redis"
)

const defaultSummaryTTL = time.Minute

// SummaryCache keeps per-customer balance summaries in redis for a short
// TTL. It is an optimization only: every failure path degrades to the
// database, and a nil *SummaryCache is a valid no-op cache.
type SummaryCache struct {
	redis redis.RedisAdapter
	ttl   time.Duration
}

func NewSummaryCache(adapter redis.RedisAdapter, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &SummaryCache{redis: adapter, ttl: ttl}
}

func summaryKey(userID, customerID int64) string {
	return fmt.Sprintf("summary:%d:%d", userID, customerID)
}

func (c *SummaryCache) Get(userID, customerID int64) (model.Summary, bool) {
	if c == nil || c.redis == nil {
		return model.Summary{}, false
	}
	b, err := c.redis.Get(summaryKey(userID, customerID))
	if err != nil {
		if !errors.Is(err, redis.NilError) {
			logger.Warn("summary cache read failed", "error", err)
		}
		return model.Summary{}, false
	}
	var s model.Summary
	if err := json.Unmarshal(b, &s); err != nil {
		logger.Warn("summary cache entry corrupt", "error", err)
		return model.Summary{}, false
	}
	return s, true
}

func (c *SummaryCache) Set(userID, customerID int64, s model.Summary) {
	if c == nil || c.redis == nil {
		return
	}
	b, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.redis.Set(summaryKey(userID, customerID), b, c.ttl); err != nil {
		logger.Warn("summary cache write failed", "error", err)
	}
}

func (c *SummaryCache) Invalidate(userID, customerID int64) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Del(summaryKey(userID, customerID)); err != nil {
		logger.Warn("summary cache invalidation failed", "error", err)
	}
}
