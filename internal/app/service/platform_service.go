package service

import (
	"context"
	"fmt"
	"strings"

	"cyber_champions/internal/common"
	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/domain/repository"
	"cyber_champions/internal/platform/assistant"
)

// AdminService backs the admin panel's user listing.
type AdminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) *AdminService {
	return &AdminService{userRepo: userRepo}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

type StatsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

func (s *StatsService) Get(ctx context.Context) (*model.PlatformStats, error) {
	return s.statsRepo.Counts(ctx)
}

// AssistantService relays chat messages to the generative-language API.
type AssistantService struct {
	responder assistant.Responder
}

func NewAssistantService(r assistant.Responder) *AssistantService {
	return &AssistantService{responder: r}
}

type ChatRequest struct {
	Message string `json:"message" validate:"max=4000"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

func (s *AssistantService) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if s.responder == nil {
		return nil, common.NewError(common.ErrServiceUnavailable, "AI assistant is not configured")
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return nil, common.NewError(common.ErrBadRequest, "message is required")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	reply, err := s.responder.Reply(ctx, req.Message)
	if err != nil {
		return nil, fmt.Errorf("assistant reply: %w", err)
	}
	return &ChatResponse{Reply: reply}, nil
}
