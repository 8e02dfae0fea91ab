package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/usecase"
)

// store is the subset of the redis client used here
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type predictionCache struct {
	client store
}

// NewPredictionCache creates a Redis backed prediction cache
func NewPredictionCache(client redis.Cmdable) usecase.PredictionCache {
	return &predictionCache{client: client}
}

func (c *predictionCache) Get(ctx context.Context, key string) (*usecase.PredictOutput, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var output usecase.PredictOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, false, fmt.Errorf("decode cached prediction: %w", err)
	}
	return &output, true, nil
}

func (c *predictionCache) Set(ctx context.Context, key string, output *usecase.PredictOutput, ttl time.Duration) error {
	data, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("encode prediction: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
