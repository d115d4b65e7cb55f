package ratelimit

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter throttles the LLM-backed endpoints per user
type Limiter struct {
	rdb *redis.Client
}

// Config defines rate limit rules for the two generation endpoints
type Config struct {
	MaxGenerations   int           // per window
	MaxFeedbacks     int           // per window
	GenerationWindow time.Duration // time window for interview generation
	FeedbackWindow   time.Duration // time window for feedback creation
}

// DefaultConfig returns the default rate limit configuration
func DefaultConfig() Config {
	return Config{
		MaxGenerations:   5,
		MaxFeedbacks:     10,
		GenerationWindow: time.Minute,
		FeedbackWindow:   time.Minute,
	}
}

// NewLimiter creates a Limiter over the shared Redis client
func NewLimiter() *Limiter {
	return &Limiter{rdb: GetRedisClient()}
}

// AllowGeneration reports whether the user may create another interview.
// Without a Redis client the limiter is disabled and always allows.
func (l *Limiter) AllowGeneration(userID string, config Config) (bool, error) {
	return l.allow(fmt.Sprintf("rate:generate:%s", userID), config.MaxGenerations, config.GenerationWindow)
}

// AllowFeedback reports whether the user may request another scoring call
func (l *Limiter) AllowFeedback(userID string, config Config) (bool, error) {
	return l.allow(fmt.Sprintf("rate:feedback:%s", userID), config.MaxFeedbacks, config.FeedbackWindow)
}

func (l *Limiter) allow(key string, max int, window time.Duration) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}

	count, err := l.rdb.Get(ctx, key).Int()
	if err == redis.Nil {
		count = 0
	} else if err != nil {
		return false, err
	}

	if count >= max {
		return false, nil
	}

	count64, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}

	// Set expiration if first time
	if count64 == 1 {
		l.rdb.Expire(ctx, key, window)
	}

	return true, nil
}
