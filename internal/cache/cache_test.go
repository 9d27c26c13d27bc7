package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/giftlinkhq/giftlink/internal/cache"
)

func TestMemorySetGet(t *testing.T) {
	c := cache.NewMemory(time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatalf("unexpected hit on empty cache")
	}

	c.Set(ctx, "k", []byte("v"))

	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("Get = %q/%v, want v/true", got, ok)
	}

	c.Delete(ctx, "k")

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("key survived Delete")
	}
}

func TestMemoryExpiry(t *testing.T) {
	c := cache.NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"))

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestMemoryClear(t *testing.T) {
	c := cache.NewMemory(time.Minute)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))
	c.Clear()

	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatalf("key survived Clear")
	}
}
