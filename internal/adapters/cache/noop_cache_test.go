package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nyaysathi/core/internal/domain/entities"
)

func TestNoopCacheAlwaysMisses(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var out string
	if err := c.Get(ctx, "k", &out); !errors.Is(err, entities.ErrCacheMiss) {
		t.Fatalf("Get err = %v, want ErrCacheMiss", err)
	}

	ok, err := c.Exists(ctx, "k")
	if err != nil || ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
}
