package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/utils"
)

const voicesCacheKey = "avatar:voices"

// VoiceCache fronts the voice catalog with a redis TTL cache. The catalog
// barely changes, and the upstream list call is slow and rate-limited.
type VoiceCache interface {
	ListVoices(ctx context.Context) ([]Voice, error)
}

type voiceCache struct {
	rdb   *redis.Client
	talks TalkClient
	ttl   time.Duration
	log   *logger.Logger
}

func NewRedisClient(baseLog *logger.Logger) (*redis.Client, error) {
	log := baseLog.With("client", "redis")
	addr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Info("Connected to redis", "addr", addr)
	return rdb, nil
}

func NewVoiceCache(rdb *redis.Client, talks TalkClient, baseLog *logger.Logger) VoiceCache {
	log := baseLog.With("service", "VoiceCache")
	ttl := time.Duration(utils.GetEnvAsInt("VOICES_CACHE_TTL_SECONDS", 3600, log)) * time.Second
	return &voiceCache{rdb: rdb, talks: talks, ttl: ttl, log: log}
}

func (c *voiceCache) ListVoices(ctx context.Context) ([]Voice, error) {
	if c.rdb != nil {
		cached, err := c.rdb.Get(ctx, voicesCacheKey).Bytes()
		if err == nil {
			var voices []Voice
			if err := json.Unmarshal(cached, &voices); err == nil {
				return voices, nil
			}
			c.log.Warn("Dropping corrupt voices cache entry")
			c.rdb.Del(ctx, voicesCacheKey)
		} else if err != redis.Nil {
			c.log.Warn("Voice cache read failed, falling through", "error", err)
		}
	}

	voices, err := c.talks.ListVoices(ctx)
	if err != nil {
		return nil, err
	}
	if c.rdb != nil {
		if payload, err := json.Marshal(voices); err == nil {
			if err := c.rdb.Set(ctx, voicesCacheKey, payload, c.ttl).Err(); err != nil {
				c.log.Warn("Voice cache write failed", "error", err)
			}
		}
	}
	return voices, nil
}
