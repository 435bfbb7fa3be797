package handler

import (
	"net/http"

	"cyber_champions/internal/app/service"
	"cyber_champions/internal/common"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(ss *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Get(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to load stats")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

type AssistantHandler struct {
	assistantService *service.AssistantService
}

func NewAssistantHandler(as *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: as}
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.assistantService.Chat(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Tizimda xatolik yuz berdi. Iltimos, keyinroq urinib ko'ring.")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
