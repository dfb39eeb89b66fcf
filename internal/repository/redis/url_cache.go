package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "url:"

// URLCache keeps resolved mappings hot so the redirect path usually
// skips Postgres entirely.
type URLCache struct {
	client *redis.Client
}

func NewURLCache(client *redis.Client) *URLCache {
	return &URLCache{client: client}
}

// GetURL returns (nil, nil) on a cache miss; callers fall through to
// the database.
func (r *URLCache) GetURL(ctx context.Context, shortCode string) (*domain.URL, error) {
	data, err := r.client.Get(ctx, keyPrefix+shortCode).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var url domain.URL
	if err := json.Unmarshal([]byte(data), &url); err != nil {
		return nil, fmt.Errorf("corrupt cache entry for %s: %w", shortCode, err)
	}

	return &url, nil
}

func (r *URLCache) SetURL(ctx context.Context, url *domain.URL, ttl time.Duration) error {
	data, err := json.Marshal(url)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, keyPrefix+url.ShortCode, data, ttl).Err()
}

func (r *URLCache) DeleteURL(ctx context.Context, shortCode string) error {
	return r.client.Del(ctx, keyPrefix+shortCode).Err()
}
