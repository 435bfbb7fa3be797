package handler

import (
	"net/http"
	"strconv"

	"cyber_champions/internal/app/service"
	"cyber_champions/internal/common"

	"github.com/go-chi/chi/v5"
)

type CompetitionHandler struct {
	competitionService *service.CompetitionService
}

func NewCompetitionHandler(cs *service.CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{competitionService: cs}
}

func (h *CompetitionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCompetitions) // GET /api/competitions
}

// RegisterAdminRoutes is mounted under /api/admin/competitions.
func (h *CompetitionHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/", h.createCompetition)
	r.Delete("/{id}", h.deleteCompetition)
}

func (h *CompetitionHandler) listCompetitions(w http.ResponseWriter, r *http.Request) {
	competitions, err := h.competitionService.List(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to load competitions")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, competitions)
}

func (h *CompetitionHandler) createCompetition(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCompetitionRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.competitionService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to add competition")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *CompetitionHandler) deleteCompetition(w http.ResponseWriter, r *http.Request) {
	// Ids are integers, so a non-numeric one matches no row; like any
	// other unknown id that is a successful no-op.
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.RespondWithJSON(w, http.StatusOK, common.SuccessResponse{Success: true})
		return
	}
	if err := h.competitionService.Delete(r.Context(), id); err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to delete competition")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.SuccessResponse{Success: true})
}
