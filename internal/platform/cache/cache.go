package cache

import (
	"context"
	"log"
	"time"
)

// Cache stores JSON-encodable values by key. A miss is (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const (
	KeyCompetitions = "cyber:competitions"
	KeyLeaderboard  = "cyber:leaderboard"
	KeyChallenges   = "cyber:challenges"
	KeyQuizzes      = "cyber:quizzes"
)

// Noop is used when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error               { return nil }

// Remember returns the cached value for key or loads and stores it.
// Cache failures are logged and never fail the request.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("WARN: cache get %s: %v", key, err)
	} else if hit {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if err := c.Set(ctx, key, value, ttl); err != nil {
		log.Printf("WARN: cache set %s: %v", key, err)
	}
	return value, nil
}

// Invalidate drops keys, logging instead of failing.
func Invalidate(ctx context.Context, c Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		log.Printf("WARN: cache invalidate %v: %v", keys, err)
	}
}
