package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 30 * time.Second

// LeaderboardCache keeps recent leaderboard pages in Redis so repeated
// reads skip Postgres. Entries carry a generation number bumped on
// every save; stale generations simply age out via TTL.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &LeaderboardCache{client: client, ttl: ttl, prefix: "leaderboard"}
}

func (c *LeaderboardCache) key(gen int64, category string, limit int) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s:g%d:%s:%d", c.prefix, gen, category, limit)
}

func (c *LeaderboardCache) genKey() string {
	return c.prefix + ":gen"
}

// Get returns the cached page, or nil on a miss.
func (c *LeaderboardCache) Get(ctx context.Context, category string, limit int) ([]GameSession, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, err
	}
	data, err := c.client.Get(ctx, c.key(gen, category, limit)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return decodePage(data)
}

// Set stores a leaderboard page under the current generation.
func (c *LeaderboardCache) Set(ctx context.Context, category string, limit int, sessions []GameSession) error {
	gen, err := c.generation(ctx)
	if err != nil {
		return err
	}
	data, err := encodePage(sessions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(gen, category, limit), data, c.ttl).Err()
}

// encodePage normalizes a nil page to an empty one so an empty
// leaderboard still counts as a cache hit on the next read.
func encodePage(sessions []GameSession) ([]byte, error) {
	if sessions == nil {
		sessions = []GameSession{}
	}
	return json.Marshal(sessions)
}

func decodePage(data []byte) ([]GameSession, error) {
	var sessions []GameSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []GameSession{}
	}
	return sessions, nil
}

// Invalidate bumps the generation so every cached page misses.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.genKey()).Err()
}

func (c *LeaderboardCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey()).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return gen, nil
}
