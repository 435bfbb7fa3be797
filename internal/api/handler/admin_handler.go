package handler

import (
	"net/http"

	"cyber_champions/internal/app/service"
	"cyber_champions/internal/common"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(as *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: as}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.listUsers) // GET /api/admin/users
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to load users")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}
