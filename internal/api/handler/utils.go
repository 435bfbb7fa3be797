package handler

import (
	"net/http"
	"strconv"

	"cyber_champions/internal/common"

	"github.com/go-chi/chi/v5"
)

// int64Param parses a numeric URL parameter, answering 400 itself when it
// is not one.
func int64Param(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid "+name+": "+raw)
		return 0, false
	}
	return id, true
}
