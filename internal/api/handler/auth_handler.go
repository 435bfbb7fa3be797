package handler

import (
	"net/http"

	"cyber_champions/internal/api/middleware"
	"cyber_champions/internal/app/service"
	"cyber_champions/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	limiter     *middleware.RateLimiter
}

func NewAuthHandler(authService *service.AuthService, limiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.With(h.limiter.Limit).Post("/login", h.login)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Ro'yxatdan o'tishda xatolik")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Login failed")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
