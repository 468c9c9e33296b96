package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/xketsu/weather-app/internal/model"
)

const keyPrefix = "weather:"

// Store is a Redis-backed cache of lookup results. The client is injected
// at construction; there is no package-level singleton.
type Store struct {
	client *redisv9.Client
	ttl    time.Duration
}

// New dials a Redis store at the given address. Results expire after ttl.
func New(addr string, ttl time.Duration) *Store {
	return &Store{
		client: redisv9.NewClient(&redisv9.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func key(city string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(city))
}

// Get returns the cached result for a city, or an error on miss or
// malformed cache entry.
func (s *Store) Get(ctx context.Context, city string) (*model.WeatherResult, error) {
	val, err := s.client.Get(ctx, key(city)).Result()
	if err != nil {
		return nil, err
	}
	var result model.WeatherResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Set stores a result best-effort; a failed write never fails the lookup.
func (s *Store) Set(ctx context.Context, city string, result *model.WeatherResult) {
	b, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = s.client.Set(ctx, key(city), b, s.ttl).Err()
}

// Close releases the underlying Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
