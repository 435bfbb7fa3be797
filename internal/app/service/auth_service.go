package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cyber_champions/internal/common"
	"cyber_champions/internal/common/security"
	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/domain/repository"
	"cyber_champions/internal/platform/metrics"
)

const (
	msgUserTaken      = "Username yoki email allaqachon mavjud"
	msgBadCredentials = "Username yoki parol noto'g'ri"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,bcrypt_len"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
	Token   string      `json:"token,omitempty"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	resp, err := s.register(ctx, req)
	metrics.AuthAttempts.WithLabelValues("register", outcome(err == nil)).Inc()
	return resp, err
}

func (s *AuthService) register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.NewError(common.ErrAlreadyExists, msgUserTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created, err := s.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return s.respond(created)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	resp, err := s.login(ctx, req)
	metrics.AuthAttempts.WithLabelValues("login", outcome(err == nil)).Inc()
	return resp, err
}

func (s *AuthService) login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	badCredentials := common.NewError(common.ErrUnauthorized, msgBadCredentials)
	if req.Username == "" || req.Password == "" {
		return nil, badCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, badCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPassword(req.Password, user.Password) {
		return nil, badCredentials
	}

	if !security.IsHashed(user.Password) {
		s.upgradeLegacyPassword(ctx, user.ID, req.Password)
	}
	return s.respond(user)
}

// upgradeLegacyPassword replaces a plaintext password with its hash.
// Failure is logged; the login itself already succeeded.
func (s *AuthService) upgradeLegacyPassword(ctx context.Context, userID int64, password string) {
	hash, err := security.HashPassword(password)
	if err == nil {
		err = s.userRepo.UpdatePassword(ctx, userID, hash)
	}
	if err != nil {
		log.Printf("WARN: could not rehash legacy password for user %d: %v", userID, err)
	}
}

func (s *AuthService) respond(user *model.User) (*AuthResponse, error) {
	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.Password = ""
	return &AuthResponse{Success: true, User: user, Token: token}, nil
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
