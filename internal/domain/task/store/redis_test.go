package store

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"wavecast-server-go/internal/domain/task"
)

func TestRedisStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	s, err := NewRedis(Config{
		TTL: time.Minute,
		Redis: &RedisConfig{
			Addr: mr.Addr(),
		},
	})
	if err != nil {
		t.Fatalf("NewRedis error: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close(ctx)
	})

	if _, found, err := s.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get(missing) = found=%v err=%v, want absent", found, err)
	}

	outcome := task.Success(3, "Daily Digest", 5)
	if err := s.Put(ctx, "handle-1", outcome); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, found, err := s.Get(ctx, "handle-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !found {
		t.Fatal("expected outcome to be found")
	}
	if got.Status != task.StatusSuccess || got.PodcastID != 3 {
		t.Errorf("unexpected outcome: %+v", got)
	}
	if got.TranscriptEntries != 5 {
		t.Errorf("transcript entry count = %d, want 5", got.TranscriptEntries)
	}
}

func TestRedisStoreTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	s, err := NewRedis(Config{
		TTL: time.Second,
		Redis: &RedisConfig{
			Addr: mr.Addr(),
		},
	})
	if err != nil {
		t.Fatalf("NewRedis error: %v", err)
	}
	ctx := context.Background()
	t.Cleanup(func() {
		_ = s.Close(ctx)
	})

	if err := s.Put(ctx, "handle", task.Failure("boom")); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, found, _ := s.Get(ctx, "handle"); found {
		t.Error("expected outcome to expire")
	}
}

func TestNewRedisValidation(t *testing.T) {
	if _, err := NewRedis(Config{}); err == nil {
		t.Error("expected error when redis config missing")
	}
	if _, err := NewRedis(Config{Redis: &RedisConfig{}}); err == nil {
		t.Error("expected error when redis addr missing")
	}
}
