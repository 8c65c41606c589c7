package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	t.Cleanup(func() { c.Close() })
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("expected v, got %s", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()
	t.Cleanup(func() { c.Close() })

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	t.Cleanup(func() { c.Close() })
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()
	t.Cleanup(func() { c.Close() })
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Delete(ctx, "k")

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected miss after delete, got %v", err)
	}
}

func TestMemoryCacheGetOrSet(t *testing.T) {
	c := NewMemoryCache()
	t.Cleanup(func() { c.Close() })
	ctx := context.Background()

	calls := 0
	fn := func() ([]byte, error) {
		calls++
		return []byte("computed"), nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrSet(ctx, "k", time.Minute, fn)
		if err != nil {
			t.Fatalf("GetOrSet: %v", err)
		}
		if string(got) != "computed" {
			t.Errorf("expected computed, got %s", got)
		}
	}
	if calls != 1 {
		t.Errorf("expected fn to run once, ran %d times", calls)
	}
}
