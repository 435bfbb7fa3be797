package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cyber_champions/internal/common"
	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/domain/repository"
	"cyber_champions/internal/platform/cache"
	"cyber_champions/internal/platform/metrics"
)

type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
	cache         cache.Cache
	cacheTTL      time.Duration
}

func NewChallengeService(repo repository.ChallengeRepository, c cache.Cache, ttl time.Duration) *ChallengeService {
	return &ChallengeService{challengeRepo: repo, cache: c, cacheTTL: ttl}
}

type SubmitFlagRequest struct {
	ID   string `json:"id"`
	Flag string `json:"flag"`
}

type SubmitFlagResponse struct {
	Success bool `json:"success"`
}

func (s *ChallengeService) List(ctx context.Context) ([]model.Challenge, error) {
	return cache.Remember(ctx, s.cache, cache.KeyChallenges, s.cacheTTL, s.challengeRepo.List)
}

// SubmitFlag compares the submitted flag with the stored one byte for byte.
func (s *ChallengeService) SubmitFlag(ctx context.Context, req SubmitFlagRequest) (*SubmitFlagResponse, error) {
	flag, err := s.challengeRepo.FindFlag(ctx, req.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Challenge not found")
		}
		return nil, fmt.Errorf("failed to load challenge %q: %w", req.ID, err)
	}

	ok := flag == req.Flag
	result := "wrong"
	if ok {
		result = "solved"
	}
	metrics.FlagSubmissions.WithLabelValues(req.ID, result).Inc()
	return &SubmitFlagResponse{Success: ok}, nil
}
