// Package cache provides a Redis-backed cache of registrar verdicts. The
// registrar API is rate limited, so repeated checks of the same domain
// within a short window are served from Redis instead.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/domain-scout/internal/domain"
	"github.com/jonesrussell/domain-scout/internal/logger"
)

// connectionTimeout bounds the startup ping.
const connectionTimeout = 2 * time.Second

// keyPrefix namespaces availability entries in Redis.
const keyPrefix = "availability:"

// Redis caches CheckResults keyed by domain with a fixed TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewRedis creates a Redis cache and verifies connectivity.
func NewRedis(addr, password string, ttl time.Duration, log logger.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl, log: log}, nil
}

// Get returns the cached verdict for a domain, if any. Cache errors are
// logged and treated as misses; the dispatcher then asks the registrar.
func (r *Redis) Get(ctx context.Context, domainName string) (domain.CheckResult, bool) {
	data, err := r.client.Get(ctx, keyPrefix+domainName).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Debug("Cache read failed",
				logger.String("domain", domainName),
				logger.Error(err),
			)
		}
		return domain.CheckResult{}, false
	}

	var result domain.CheckResult
	if err := json.Unmarshal(data, &result); err != nil {
		r.log.Debug("Cache entry corrupt, ignoring",
			logger.String("domain", domainName),
			logger.Error(err),
		)
		return domain.CheckResult{}, false
	}

	return result, true
}

// Set stores a verdict. Results carrying an error message are never cached.
func (r *Redis) Set(ctx context.Context, result domain.CheckResult) {
	if result.ErrorMessage != "" {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		r.log.Debug("Cache entry marshal failed", logger.Error(err))
		return
	}

	if err := r.client.Set(ctx, keyPrefix+result.Domain, data, r.ttl).Err(); err != nil {
		r.log.Debug("Cache write failed",
			logger.String("domain", result.Domain),
			logger.Error(err),
		)
	}
}

// Ping checks Redis connectivity for health reporting.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
