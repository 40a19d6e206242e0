package exercise

import (
	"context"
	"fmt"
	"log"
)

// ConfigCache persists validated generated configs so a generative round
// trip happens once per novel exercise name.
type ConfigCache interface {
	// GetConfig returns the cached config for a normalized name, or nil
	// when none is cached.
	GetConfig(name string) (*Config, error)

	// PutConfig caches a validated config under a normalized name.
	PutConfig(name string, cfg *Config) error
}

// Service resolves exercise names to validated template configs, consulting
// the cache before the generator.
type Service struct {
	cache ConfigCache
	gen   Generator
}

// NewService creates a Service. A nil cache disables caching.
func NewService(cache ConfigCache, gen Generator) *Service {
	return &Service{cache: cache, gen: gen}
}

// Config returns a validated config for the named exercise.
func (s *Service) Config(ctx context.Context, name string) (*Config, error) {
	key := Normalize(name)

	if s.cache != nil {
		cached, err := s.cache.GetConfig(key)
		if err != nil {
			log.Printf("Config cache lookup failed for %q: %v", key, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	if s.gen == nil {
		return nil, fmt.Errorf("no generator configured for exercise %q", name)
	}

	cfg, err := s.gen.Generate(ctx, name)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.PutConfig(key, cfg); err != nil {
			log.Printf("Failed to cache config for %q: %v", key, err)
		}
	}

	return cfg, nil
}
