package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), searchTTL)
}

func NewRedisCacheWithClient(client *redis.Client, searchTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, searchTTL: searchTTL}
}

// GetSearch returns nil, nil on a cache miss.
func (c *RedisCache) GetSearch(ctx context.Context, origin, destination, date string) ([]domain.FlightGroup, error) {
	data, err := c.client.Get(ctx, searchKey(origin, destination, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var groups []domain.FlightGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, origin, destination, date string, groups []domain.FlightGroup) error {
	payload, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(origin, destination, date), payload, c.searchTTL).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func searchKey(origin, destination, date string) string {
	return fmt.Sprintf("cache:flights:%s:%s:%s", normalize(origin), normalize(destination), date)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
