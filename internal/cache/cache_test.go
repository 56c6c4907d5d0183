package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/jonesrussell/domain-scout/internal/cache"
	"github.com/jonesrussell/domain-scout/internal/domain"
	"github.com/jonesrussell/domain-scout/internal/logger"
)

const testTTL = time.Minute

func newTestCache(t *testing.T) (*cache.Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := cache.NewRedis(mr.Addr(), "", testTTL, logger.NewNop())
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestRedis_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	price := 129.99
	stored := domain.CheckResult{
		Domain:    "petly.io",
		Available: true,
		Premium:   true,
		Price:     &price,
	}
	c.Set(ctx, stored)

	got, ok := c.Get(ctx, "petly.io")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.Domain != stored.Domain || got.Available != stored.Available || got.Premium != stored.Premium {
		t.Fatalf("cached verdict mismatch: %+v", got)
	}
	if got.Price == nil || *got.Price != price {
		t.Fatalf("expected cached price %v, got %v", price, got.Price)
	}
}

func TestRedis_MissOnUnknownDomain(t *testing.T) {
	c, _ := newTestCache(t)

	if _, ok := c.Get(context.Background(), "unseen.io"); ok {
		t.Fatal("expected a miss for an unseen domain")
	}
}

func TestRedis_NeverCachesErrorResults(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, domain.CheckResult{
		Domain:       "flaky.io",
		ErrorMessage: "availability check timed out",
	})

	if _, ok := c.Get(ctx, "flaky.io"); ok {
		t.Fatal("error results must not be cached")
	}
}

func TestRedis_EntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, domain.CheckResult{Domain: "petly.io", Available: true})
	mr.FastForward(testTTL + time.Second)

	if _, ok := c.Get(ctx, "petly.io"); ok {
		t.Fatal("expected the entry to expire")
	}
}

func TestRedis_CorruptEntryIsAMiss(t *testing.T) {
	c, mr := newTestCache(t)

	if err := mr.Set("availability:broken.io", "{not json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	if _, ok := c.Get(context.Background(), "broken.io"); ok {
		t.Fatal("corrupt entries must read as misses")
	}
}

func TestRedis_Ping(t *testing.T) {
	c, mr := newTestCache(t)

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	mr.Close()
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail after redis stopped")
	}
}
