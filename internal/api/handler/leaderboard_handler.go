package handler

import (
	"net/http"

	"cyber_champions/internal/app/service"
	"cyber_champions/internal/common"

	"github.com/go-chi/chi/v5"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(ls *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

func (h *LeaderboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.getLeaderboard)
}

func (h *LeaderboardHandler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardService.List(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to load leaderboard")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}
