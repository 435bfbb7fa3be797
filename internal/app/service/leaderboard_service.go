package service

import (
	"context"
	"time"

	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/domain/repository"
	"cyber_champions/internal/platform/cache"
)

type LeaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
	cache           cache.Cache
	cacheTTL        time.Duration
}

func NewLeaderboardService(repo repository.LeaderboardRepository, c cache.Cache, ttl time.Duration) *LeaderboardService {
	return &LeaderboardService{leaderboardRepo: repo, cache: c, cacheTTL: ttl}
}

// List returns entries ordered by rank ascending.
func (s *LeaderboardService) List(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return cache.Remember(ctx, s.cache, cache.KeyLeaderboard, s.cacheTTL, s.leaderboardRepo.List)
}
