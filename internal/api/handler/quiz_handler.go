package handler

import (
	"net/http"

	"cyber_champions/internal/api/middleware"
	"cyber_champions/internal/app/service"
	"cyber_champions/internal/common"

	"github.com/go-chi/chi/v5"
)

type QuizHandler struct {
	quizService *service.QuizService
}

func NewQuizHandler(qs *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: qs}
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listQuizzes)                // GET /api/quizzes
	r.Get("/{id}/questions", h.getQuestions) // GET /api/quizzes/q1/questions
	r.Post("/submit", h.submitQuiz)          // POST /api/quizzes/submit
}

// RegisterUserRoutes is mounted under /api/users.
func (h *QuizHandler) RegisterUserRoutes(r chi.Router) {
	r.Get("/{userId}/certificates", h.listCertificates)
}

func (h *QuizHandler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizService.List(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to load quizzes")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) getQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.quizService.Questions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to load questions")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *QuizHandler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitQuizRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var callerID *int64
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		callerID = &id
	}

	resp, err := h.quizService.Submit(r.Context(), callerID, req)
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to submit quiz")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *QuizHandler) listCertificates(w http.ResponseWriter, r *http.Request) {
	userID, ok := int64Param(w, r, "userId")
	if !ok {
		return
	}
	certs, err := h.quizService.Certificates(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, err, "Failed to load certificates")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, certs)
}
