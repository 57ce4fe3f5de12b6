package cache

import (
	"context"
	"time"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/ports"
)

// noopCache is used when Redis is disabled. Every lookup misses.
type noopCache struct{}

// NewNoopCache returns a cache that stores nothing
func NewNoopCache() ports.CacheRepository {
	return noopCache{}
}

func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (noopCache) Get(context.Context, string, interface{}) error { return entities.ErrCacheMiss }

func (noopCache) Delete(context.Context, string) error { return nil }

func (noopCache) Exists(context.Context, string) (bool, error) { return false, nil }

func (noopCache) Ping(context.Context) error { return nil }
