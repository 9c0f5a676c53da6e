package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
)

const latestFixKey = "gps:latest"

// LatestFixCache is a write-through cache of the most recent fix. It is
// strictly best-effort: postgres stays the source of truth and every miss
// or redis error falls back to it.
type LatestFixCache struct {
	client *redis.Client
}

func NewLatestFixCache(client *redis.Client) *LatestFixCache {
	return &LatestFixCache{client: client}
}

func (c *LatestFixCache) Set(ctx context.Context, fix *domain.Fix) error {
	body, err := json.Marshal(fix)
	if err != nil {
		return fmt.Errorf("marshal fix: %w", err)
	}
	return c.client.Set(ctx, latestFixKey, body, 0).Err()
}

func (c *LatestFixCache) Get(ctx context.Context) (*domain.Fix, error) {
	body, err := c.client.Get(ctx, latestFixKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var fix domain.Fix
	if err := json.Unmarshal(body, &fix); err != nil {
		return nil, fmt.Errorf("unmarshal cached fix: %w", err)
	}
	return &fix, nil
}
