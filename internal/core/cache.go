package core

import (
	"github.com/petdirectory/api/internal/cache"
	"github.com/petdirectory/api/internal/models"

	"go.uber.org/zap"
)

// NewCache builds the cache client for the configured backend.
func NewCache(config models.CacheConfiguration) cache.ICache {
	var (
		client cache.ICache
		err    error
	)

	switch config.Type {
	case "valkey":
		client, err = cache.NewValkeyCache(*config.Valkey)
	default:
		client, err = cache.NewRedisCache(*config.Redis)
	}

	if err != nil {
		zap.L().Fatal("Failed to connect to cache", zap.String("type", config.Type), zap.Error(err))
	}

	return client
}
