package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/profile-directory/internal/application/service"
	"github.com/khoahotran/profile-directory/internal/config"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

const (
	listGenerationKey = "profiles:list:gen"
	listKeyPrefix     = "profiles:list"
	popularSkillsKey  = "skills:popular"
)

func NewRedisClient(cfg config.Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}

	log.Info("Connect Redis successfully.")
	return rdb, nil
}

type redisListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisListCache stores list pages under a generation number. Invalidate
// bumps the generation, so older pages are never read again and expire on
// their own.
func NewRedisListCache(rdb *redis.Client, ttl time.Duration) service.ListCache {
	return &redisListCache{rdb: rdb, ttl: ttl}
}

func (c *redisListCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, listGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func listCacheKey(gen int64, key service.ListKey) string {
	return fmt.Sprintf("%s:%d:%d:%d:%q", listKeyPrefix, gen, key.Page, key.Limit, key.Search)
}

func (c *redisListCache) Get(ctx context.Context, key service.ListKey) (*service.CachedPage, int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, err
	}

	data, err := c.rdb.Get(ctx, listCacheKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, nil
	}
	if err != nil {
		return nil, gen, err
	}

	var page service.CachedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, gen, fmt.Errorf("decode cached page: %w", err)
	}
	return &page, gen, nil
}

// Set stores page under gen. If the generation moved on since gen was read,
// the page lands under a key nobody reads and expires with the TTL.
func (c *redisListCache) Set(ctx context.Context, key service.ListKey, gen int64, page service.CachedPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode cached page: %w", err)
	}
	return c.rdb.Set(ctx, listCacheKey(gen, key), data, c.ttl).Err()
}

func (c *redisListCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, listGenerationKey).Err()
}

type redisSkillIndex struct {
	rdb *redis.Client
}

// NewRedisSkillIndex keeps skill counts in a sorted set.
func NewRedisSkillIndex(rdb *redis.Client) service.SkillIndex {
	return &redisSkillIndex{rdb: rdb}
}

func (s *redisSkillIndex) Apply(ctx context.Context, added, removed []string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, skill := range added {
			pipe.ZIncrBy(ctx, popularSkillsKey, 1, skill)
		}
		for _, skill := range removed {
			pipe.ZIncrBy(ctx, popularSkillsKey, -1, skill)
		}
		pipe.ZRemRangeByScore(ctx, popularSkillsKey, "-inf", "0")
		return nil
	})
	return err
}

func (s *redisSkillIndex) Top(ctx context.Context, n int) ([]service.SkillCount, error) {
	entries, err := s.rdb.ZRevRangeWithScores(ctx, popularSkillsKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]service.SkillCount, 0, len(entries))
	for _, z := range entries {
		skill, _ := z.Member.(string)
		out = append(out, service.SkillCount{Skill: skill, Count: int64(z.Score)})
	}
	return out, nil
}
