package services

import (
	"encoding/json"

	"github.com/petdirectory/api/internal/cache"

	"go.uber.org/zap"
)

// cachedRead attempts to serve a response from the cache. Cache failures are
// logged and treated as misses so reads fall through to the database.
func cachedRead[R any](logger *zap.Logger, c cache.ICache, key string) (R, bool) {
	var response R

	raw, found, err := c.Get(key)
	if err != nil {
		logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return response, false
	}
	if !found {
		return response, false
	}

	if err = json.Unmarshal([]byte(raw), &response); err != nil {
		logger.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return response, false
	}

	return response, true
}

// cacheWrite stores a response under a key with a TTL. Failures are logged and
// otherwise ignored; serving uncached is always acceptable.
func cacheWrite[R any](logger *zap.Logger, c cache.ICache, key string, response R, ttlSeconds int) {
	raw, err := json.Marshal(response)
	if err != nil {
		logger.Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}

	if err = c.Set(key, string(raw), ttlSeconds); err != nil {
		logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// purgePrefix drops every cached entry under a prefix after a write commits.
func purgePrefix(logger *zap.Logger, c cache.ICache, prefix string) {
	if err := c.DeleteByPrefix(prefix); err != nil {
		logger.Error("Cache purge failed", zap.String("prefix", prefix), zap.Error(err))
	}
}

// normalizePage applies pagination defaults for list reads.
func normalizePage(page, limit, defaultPage, defaultLimit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
