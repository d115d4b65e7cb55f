package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGenerationLimitEnforced(t *testing.T) {
	setupMiniredis(t)

	limiter := NewLimiter()
	config := Config{MaxGenerations: 2, GenerationWindow: time.Minute}

	for i := 0; i < 2; i++ {
		allowed, err := limiter.AllowGeneration("user1", config)
		if err != nil {
			t.Fatalf("Limiter check failed: %v", err)
		}
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
	}

	allowed, err := limiter.AllowGeneration("user1", config)
	if err != nil {
		t.Fatalf("Limiter check failed: %v", err)
	}
	if allowed {
		t.Error("Expected the third request to be denied")
	}
}

func TestLimitsAreScopedPerUser(t *testing.T) {
	setupMiniredis(t)

	limiter := NewLimiter()
	config := Config{MaxGenerations: 1, GenerationWindow: time.Minute}

	limiter.AllowGeneration("user1", config)
	if allowed, _ := limiter.AllowGeneration("user1", config); allowed {
		t.Error("Expected user1 to be throttled")
	}
	if allowed, _ := limiter.AllowGeneration("user2", config); !allowed {
		t.Error("Expected user2 to be unaffected by user1's quota")
	}
}

func TestWindowExpiryResetsQuota(t *testing.T) {
	mr := setupMiniredis(t)

	limiter := NewLimiter()
	config := Config{MaxFeedbacks: 1, FeedbackWindow: 10 * time.Second}

	limiter.AllowFeedback("user1", config)
	if allowed, _ := limiter.AllowFeedback("user1", config); allowed {
		t.Fatal("Expected user1 to be throttled inside the window")
	}

	mr.FastForward(11 * time.Second)
	if allowed, _ := limiter.AllowFeedback("user1", config); !allowed {
		t.Error("Expected the quota to reset after the window expired")
	}
}

func TestLimiterDisabledWithoutRedis(t *testing.T) {
	SetClient(nil)

	limiter := NewLimiter()
	for i := 0; i < 100; i++ {
		allowed, err := limiter.AllowGeneration("user1", DefaultConfig())
		if err != nil {
			t.Fatalf("Disabled limiter must not error: %v", err)
		}
		if !allowed {
			t.Fatal("Disabled limiter must allow every request")
		}
	}
}
