package handler

import (
	"net/http"

	"cyber_champions/internal/api/middleware"
	"cyber_champions/internal/app/service"
	"cyber_champions/internal/common"

	"github.com/go-chi/chi/v5"
)

type ChallengeHandler struct {
	challengeService *service.ChallengeService
	limiter          *middleware.RateLimiter
}

func NewChallengeHandler(cs *service.ChallengeService, limiter *middleware.RateLimiter) *ChallengeHandler {
	return &ChallengeHandler{challengeService: cs, limiter: limiter}
}

func (h *ChallengeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listChallenges)                          // GET /api/challenges
	r.With(h.limiter.Limit).Post("/submit", h.submitFlag) // POST /api/challenges/submit
}

func (h *ChallengeHandler) listChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challengeService.List(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to load challenges")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) submitFlag(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitFlagRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.challengeService.SubmitFlag(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to check flag")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
