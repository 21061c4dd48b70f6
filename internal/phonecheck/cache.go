package phonecheck

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"phonenumber_service/platform/logger"
	"phonenumber_service/platform/phone"
)

const cacheKeyPrefix = "phone:normalize:"

// NormalizeCache stores normalize results. A miss and a backend failure look
// the same to the caller: the number is decoded again.
type NormalizeCache interface {
	Get(ctx context.Context, key string) (NormalizeResponse, bool)
	Set(ctx context.Context, key string, value NormalizeResponse)
}

// RedisCache is a NormalizeCache backed by Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, log: log}
}

func (c *RedisCache) Get(ctx context.Context, key string) (NormalizeResponse, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("normalize cache read failed", "error", err)
		}
		return NormalizeResponse{}, false
	}

	var value NormalizeResponse
	if err := json.Unmarshal(raw, &value); err != nil {
		c.log.Warn("normalize cache entry corrupt", "error", err)
		return NormalizeResponse{}, false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value NormalizeResponse) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("normalize cache write failed", "error", err)
	}
}

// cacheKey hashes the input so raw phone numbers never appear in key names.
func cacheKey(region string, format phone.DisplayFormat, input string) string {
	sum := sha256.Sum256([]byte(input))
	return cacheKeyPrefix + region + ":" + format.String() + ":" + hex.EncodeToString(sum[:])
}
