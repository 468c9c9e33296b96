package service

import (
	"context"
	"strings"

	"github.com/xketsu/weather-app/internal/model"
	"github.com/xketsu/weather-app/internal/weather"
	"github.com/xketsu/weather-app/pkg/logger"
)

// Fetcher is the provider-facing side of a lookup, implemented by
// weather.Client.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (*model.WeatherResult, error)
}

// ResultCache is the optional cache consulted before the provider,
// implemented by cache.Store.
type ResultCache interface {
	Get(ctx context.Context, city string) (*model.WeatherResult, error)
	Set(ctx context.Context, city string, result *model.WeatherResult)
}

// Lookuper is one user-initiated lookup cycle. The HTTP handler and the
// CLI both depend on this interface.
type Lookuper interface {
	Lookup(ctx context.Context, city string) (*model.WeatherResult, error)
}

// LookupService runs lookups through the fetcher, consulting the cache
// first when one is configured. With a nil cache every call goes straight
// to the provider, which is the default behavior.
type LookupService struct {
	fetcher Fetcher
	cache   ResultCache
	log     *logger.Logger
}

// NewLookupService wires a lookup service. cache may be nil.
func NewLookupService(fetcher Fetcher, cache ResultCache, log *logger.Logger) *LookupService {
	if log == nil {
		log = logger.NewNop()
	}
	return &LookupService{fetcher: fetcher, cache: cache, log: log}
}

// Lookup resolves one city to a WeatherResult.
func (s *LookupService) Lookup(ctx context.Context, city string) (*model.WeatherResult, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, weather.ErrEmptyCity
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, city); err == nil {
			s.log.Debugw("cache hit", "city", city)
			return cached, nil
		}
	}

	result, err := s.fetcher.Fetch(ctx, city)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, city, result)
	}
	return result, nil
}
