package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*CourseCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCourseCache(client, ttl), mr
}

func TestCourseCache_MissThenHit(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	if _, found, err := cache.Get(ctx, "tina"); err != nil || found {
		t.Fatalf("expected miss, found=%v err=%v", found, err)
	}

	if err := cache.Set(ctx, "tina", []string{"math-101", "phys-201"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	ids, found, err := cache.Get(ctx, "tina")
	if err != nil || !found {
		t.Fatalf("expected hit, found=%v err=%v", found, err)
	}
	if len(ids) != 2 || ids[0] != "math-101" || ids[1] != "phys-201" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestCourseCache_EmptyListIsCached(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "new-student", nil); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	ids, found, err := cache.Get(ctx, "new-student")
	if err != nil || !found {
		t.Fatalf("expected hit, found=%v err=%v", found, err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty list, got %v", ids)
	}
}

func TestCourseCache_Expires(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "tina", []string{"math-101"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if ttl := mr.TTL("courses:tina"); ttl != time.Minute {
		t.Fatalf("TTL = %v, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, found, _ := cache.Get(ctx, "tina"); found {
		t.Fatal("entry should have expired")
	}
}

func TestCourseCache_CorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	if err := mr.Set("courses:tina", "not-json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, _, err := cache.Get(context.Background(), "tina"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCourseCache_ServerDown(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	mr.Close()

	if _, _, err := cache.Get(context.Background(), "tina"); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
}

func TestConnect_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), Timeout: time.Second})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	_ = client.Close()

	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: mr.Addr(), Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
