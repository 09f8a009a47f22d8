package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dashboardTTL = time.Hour
	opTimeout    = 2 * time.Second
)

// DashboardCache stores rendered dashboard payloads in Redis, one key per
// period. A payload embeds cross-month state (all-time account balances, the
// cumulative carry-over), so a snapshot change anywhere invalidates every
// cached period, and between invalidations a hit may trail the ledger by up
// to dashboardTTL. All operations are best-effort: Redis being down degrades
// to recomputation, never to an error.
type DashboardCache struct {
	client *redis.Client
}

// NewDashboardCache connects to Redis at redisURL and verifies the connection.
func NewDashboardCache(redisURL string) (*DashboardCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &DashboardCache{client: client}, nil
}

func dashboardKey(period domain.Period) string {
	return fmt.Sprintf("dashboard:%04d-%02d", period.Year, period.Month)
}

// Get returns the cached payload for a period, if present.
func (c *DashboardCache) Get(period domain.Period) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	payload, err := c.client.Get(ctx, dashboardKey(period)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Msg("dashboard cache read failed")
		return nil, false
	}
	return payload, true
}

// Set stores the payload for a period.
func (c *DashboardCache) Set(period domain.Period, payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, dashboardKey(period), payload, dashboardTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("dashboard cache write failed")
	}
}

// Invalidate drops every cached dashboard payload. Called after each
// snapshot upsert. Other periods' payloads carry the reconciled period's
// surplus through their carry-over and its rows through their balances, so
// dropping only that period's key would leave them stale.
func (c *DashboardCache) Invalidate(period domain.Period) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	iter := c.client.Scan(ctx, 0, "dashboard:*", 0).Iterator()
	keys := []string{dashboardKey(period)}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidation scan failed")
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
}

// Close releases the Redis connection.
func (c *DashboardCache) Close() error {
	return c.client.Close()
}
