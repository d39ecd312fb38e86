package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/petdirectory/api/internal/configuration"
	"github.com/petdirectory/api/internal/models"

	"github.com/redis/rueidis"
)

type RueidisCache struct {
	client rueidis.Client
}

func newRueidisCache(
	hosts []string,
	password string,
	tlsEnabled bool,
	tlsServerName,
	errorContext string,
) (*RueidisCache, error) {
	clientOption := rueidis.ClientOption{
		InitAddress: hosts,
		Password:    password,
	}

	if tlsEnabled {
		clientOption.TLSConfig = &tls.Config{
			ServerName: tlsServerName,
			MinVersion: tls.VersionTLS12,
		}
	}

	client, err := rueidis.NewClient(clientOption)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", errorContext, err)
	}
	return &RueidisCache{client: client}, nil
}

func NewRedisCache(config models.RedisCacheConfiguration) (*RueidisCache, error) {
	return newRueidisCache(
		config.Hosts,
		config.Password,
		config.TLSEnabled,
		config.TLSServerName,
		"redis",
	)
}

func NewValkeyCache(config models.ValkeyCacheConfiguration) (*RueidisCache, error) {
	return newRueidisCache(
		config.Hosts,
		config.Password,
		config.TLSEnabled,
		config.TLSServerName,
		"valkey",
	)
}

func (r *RueidisCache) Get(key string) (string, bool, error) {
	ctx := context.Background()
	value, err := r.client.Do(ctx, r.client.B().Get().Key(key).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *RueidisCache) Set(key string, value string, ttlSeconds int) error {
	ctx := context.Background()
	return r.client.Do(ctx,
		r.client.B().Set().Key(key).Value(value).Ex(time.Duration(ttlSeconds)*time.Second).Build(),
	).Error()
}

func (r *RueidisCache) Delete(key string) error {
	ctx := context.Background()
	return r.client.Do(ctx, r.client.B().Del().Key(key).Build()).Error()
}

// DeleteByPrefix walks the keyspace with SCAN and deletes every match. Coarse
// but bounded: the key population per prefix is small (one entry per distinct
// query shape within a 60s TTL).
func (r *RueidisCache) DeleteByPrefix(prefix string) error {
	ctx := context.Background()

	var cursor uint64
	for {
		entry, err := r.client.Do(ctx,
			r.client.B().Scan().Cursor(cursor).Match(prefix+"*").Count(200).Build(),
		).AsScanEntry()
		if err != nil {
			return err
		}

		if len(entry.Elements) > 0 {
			if err = r.client.Do(ctx, r.client.B().Del().Key(entry.Elements...).Build()).Error(); err != nil {
				return err
			}
		}

		cursor = entry.Cursor
		if cursor == 0 {
			return nil
		}
	}
}

func (r *RueidisCache) GetLoginAttempts(email string) (int, error) {
	ctx := context.Background()
	key := fmt.Sprintf(configuration.CacheLoginAttemptsKey, email)

	count, err := r.client.Do(ctx, r.client.B().Get().Key(key).Build()).AsInt64()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, nil
		}
		return 0, err
	}
	return int(count), nil
}

// IncrementLoginAttempts restarts the window TTL on every increment: sustained
// guessing inside the window keeps extending the block.
func (r *RueidisCache) IncrementLoginAttempts(email string, ttlSeconds int) error {
	ctx := context.Background()
	key := fmt.Sprintf(configuration.CacheLoginAttemptsKey, email)

	if err := r.client.Do(ctx, r.client.B().Incr().Key(key).Build()).Error(); err != nil {
		return err
	}
	return r.client.Do(ctx,
		r.client.B().Expire().Key(key).Seconds(int64(ttlSeconds)).Build(),
	).Error()
}

func (r *RueidisCache) ResetLoginAttempts(email string) error {
	ctx := context.Background()
	key := fmt.Sprintf(configuration.CacheLoginAttemptsKey, email)
	return r.client.Do(ctx, r.client.B().Del().Key(key).Build()).Error()
}

func (r *RueidisCache) StoreRefreshToken(userID string, token string, ttlSeconds int) error {
	key := fmt.Sprintf(configuration.CacheRefreshTokenKey, userID)
	return r.Set(key, token, ttlSeconds)
}

func (r *RueidisCache) GetRefreshToken(userID string) (string, error) {
	key := fmt.Sprintf(configuration.CacheRefreshTokenKey, userID)
	value, _, err := r.Get(key)
	return value, err
}

func (r *RueidisCache) RevokeRefreshToken(userID string) error {
	key := fmt.Sprintf(configuration.CacheRefreshTokenKey, userID)
	return r.Delete(key)
}

func (r *RueidisCache) GetRateLimit(userIdentifier string, requestsPerMinute int) (int, error) {
	ctx := context.Background()

	key := fmt.Sprintf(configuration.CacheAppRateLimitKey, userIdentifier)
	count, err := r.client.Do(ctx, r.client.B().Incr().Key(key).Build()).AsInt64()
	if err != nil {
		return 0, err
	}

	if count == 1 {
		expireErr := r.client.Do(ctx, r.client.B().Expire().Key(key).Seconds(int64(1*time.Minute.Seconds())).Build()).
			Error()
		if expireErr != nil {
			return 0, expireErr
		}
	}

	if int(count) > requestsPerMinute {
		retryAfter, ttlErr := r.client.Do(ctx, r.client.B().Ttl().Key(key).Build()).AsInt64()
		if ttlErr != nil {
			return 0, ttlErr
		}

		return int(retryAfter), nil
	}

	return 0, nil
}

func (r *RueidisCache) Close() error {
	r.client.Close()
	return nil
}
