package service

import (
	"context"
	"fmt"
	"time"

	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/domain/repository"
	"cyber_champions/internal/platform/cache"
)

type CompetitionService struct {
	competitionRepo repository.CompetitionRepository
	cache           cache.Cache
	cacheTTL        time.Duration
}

func NewCompetitionService(repo repository.CompetitionRepository, c cache.Cache, ttl time.Duration) *CompetitionService {
	return &CompetitionService{competitionRepo: repo, cache: c, cacheTTL: ttl}
}

type CreateCompetitionRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Type         string `json:"type" validate:"required,competition_type"`
	Prize        string `json:"prize" validate:"max=64"`
	Description  string `json:"description"`
	TimeLeft     string `json:"timeLeft" validate:"max=64"`
	Participants int    `json:"participants" validate:"gte=0"`
	Color        string `json:"color" validate:"omitempty,hexcolor"`
}

type CreateCompetitionResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

func (s *CompetitionService) List(ctx context.Context) ([]model.Competition, error) {
	return cache.Remember(ctx, s.cache, cache.KeyCompetitions, s.cacheTTL, s.competitionRepo.List)
}

func (s *CompetitionService) Create(ctx context.Context, req CreateCompetitionRequest) (*CreateCompetitionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	c := &model.Competition{
		Title:        req.Title,
		Type:         model.CompetitionType(req.Type),
		Prize:        req.Prize,
		Description:  req.Description,
		TimeLeft:     req.TimeLeft,
		Participants: req.Participants,
		Color:        req.Color,
	}
	if err := s.competitionRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to add competition: %w", err)
	}
	cache.Invalidate(ctx, s.cache, cache.KeyCompetitions)
	return &CreateCompetitionResponse{Success: true, ID: c.ID}, nil
}

func (s *CompetitionService) Delete(ctx context.Context, id int64) error {
	if err := s.competitionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete competition: %w", err)
	}
	cache.Invalidate(ctx, s.cache, cache.KeyCompetitions)
	return nil
}
