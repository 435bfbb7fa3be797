package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"cyber_champions/internal/api/handler"
	"cyber_champions/internal/api/middleware"
	"cyber_champions/internal/app/service"
	"cyber_champions/internal/common"
	"cyber_champions/internal/common/security"
	"cyber_champions/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

type Services struct {
	Auth         *service.AuthService
	Competitions *service.CompetitionService
	Leaderboard  *service.LeaderboardService
	Challenges   *service.ChallengeService
	Quizzes      *service.QuizService
	Admin        *service.AdminService
	Stats        *service.StatsService
	Assistant    *service.AssistantService
}

type Options struct {
	// EnforceAuth puts the admin routes behind an admin token.
	EnforceAuth bool
	// RateLimiter guards login and flag submission; nil disables it.
	RateLimiter *middleware.RateLimiter
	// TrustProxy honours X-Forwarded-For/X-Real-IP. Enable it only behind
	// a reverse proxy that overwrites those headers; otherwise clients could
	// pick their own address and dodge the rate limiter.
	TrustProxy bool
	// StaticDir holds the built frontend. Empty or missing disables it.
	StaticDir string
}

func NewRouter(s Services, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	if opts.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		// Searches "Authorization: Bearer T"; Identify turns the claims into context values.
		api.Use(jwtauth.Verifier(security.TokenAuth))
		api.Use(middleware.Identify)

		authHandler := handler.NewAuthHandler(s.Auth, opts.RateLimiter)
		api.Route("/auth", authHandler.RegisterRoutes)

		competitionHandler := handler.NewCompetitionHandler(s.Competitions)
		api.Route("/competitions", competitionHandler.RegisterRoutes)

		leaderboardHandler := handler.NewLeaderboardHandler(s.Leaderboard)
		api.Route("/leaderboard", leaderboardHandler.RegisterRoutes)

		challengeHandler := handler.NewChallengeHandler(s.Challenges, opts.RateLimiter)
		api.Route("/challenges", challengeHandler.RegisterRoutes)

		quizHandler := handler.NewQuizHandler(s.Quizzes)
		api.Route("/quizzes", quizHandler.RegisterRoutes)
		api.Route("/users", quizHandler.RegisterUserRoutes)

		api.Get("/stats", handler.NewStatsHandler(s.Stats).GetStats)
		api.Post("/assistant/chat", handler.NewAssistantHandler(s.Assistant).Chat)

		adminHandler := handler.NewAdminHandler(s.Admin)
		api.Route("/admin", func(admin chi.Router) {
			if opts.EnforceAuth {
				admin.Use(middleware.Authenticator)
				admin.Use(middleware.AdminOnly)
			}
			adminHandler.RegisterRoutes(admin)
			admin.Route("/competitions", competitionHandler.RegisterAdminRoutes)
		})

		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			common.RespondWithError(w, http.StatusNotFound, "Not found")
		})
	})

	if spa := newSPAHandler(opts.StaticDir); spa != nil {
		r.NotFound(spa.ServeHTTP)
	}

	return r
}

// spaHandler serves files from dir and falls back to index.html so client
// side routes resolve.
type spaHandler struct {
	dir string
}

func newSPAHandler(dir string) *spaHandler {
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(filepath.Join(dir, "index.html")); err != nil || info.IsDir() {
		return nil
	}
	return &spaHandler{dir: dir}
}

func (h *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	name := filepath.Join(h.dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
