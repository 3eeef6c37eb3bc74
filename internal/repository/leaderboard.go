package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/clavedesales/clave-api/internal/config"
	"github.com/clavedesales/clave-api/internal/domain"
)

// LeaderboardCache keeps a per-season sorted set of fan counts in Redis
// so the top-N read never touches Postgres. A nil client disables the
// cache and callers fall back to the careers table.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(conf *config.RedisConfig) *LeaderboardCache {
	if conf == nil || conf.Addr == "" {
		return &LeaderboardCache{}
	}

	return &LeaderboardCache{
		client: redis.NewClient(&redis.Options{
			Addr:     conf.Addr,
			Password: conf.Password,
		}),
	}
}

func (c *LeaderboardCache) Enabled() bool {
	return c.client != nil
}

func (c *LeaderboardCache) key(seasonID string) string {
	return "leaderboard:" + seasonID
}

func (c *LeaderboardCache) SetFans(ctx context.Context, seasonID string, studentID uint, fans int) error {
	if c.client == nil {
		return nil
	}

	err := c.client.ZAdd(ctx, c.key(seasonID), redis.Z{
		Score:  float64(fans),
		Member: fmt.Sprintf("%d", studentID),
	}).Err()
	if err != nil {
		return fmt.Errorf("redis.ZAdd -> %w", err)
	}

	return nil
}

func (c *LeaderboardCache) Top(ctx context.Context, seasonID string, limit int) ([]domain.LeaderboardEntry, error) {
	if c.client == nil {
		return nil, nil
	}

	members, err := c.client.ZRevRangeWithScores(ctx, c.key(seasonID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis.ZRevRangeWithScores -> %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(members))
	for i, m := range members {
		var studentID uint
		if _, err := fmt.Sscanf(fmt.Sprintf("%v", m.Member), "%d", &studentID); err != nil {
			continue
		}

		fans := int(m.Score)
		entries = append(entries, domain.LeaderboardEntry{
			Rank:      i + 1,
			StudentID: studentID,
			Fans:      fans,
			Level:     domain.LevelForFans(fans),
		})
	}

	return entries, nil
}
