package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cyber_champions/internal/api"
	"cyber_champions/internal/api/middleware"
	"cyber_champions/internal/app/seed"
	"cyber_champions/internal/app/service"
	"cyber_champions/internal/common/security"
	"cyber_champions/internal/domain/repository"
	"cyber_champions/internal/platform/assistant"
	"cyber_champions/internal/platform/cache"
	"cyber_champions/internal/platform/config"
	"cyber_champions/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")
	if err := cfg.CheckSecrets(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if string(cfg.JWTKey) == config.DefaultJWTSecret {
		log.Println("WARN: JWT_SECRET not set, using the development default.")
	}

	// 2. Initialize JWT
	security.InitJWT(cfg.JWTKey, cfg.JWTExp)

	// 3. Initialize Database and seed it
	store, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("ERROR: Failed to open database: %v", err)
	}
	defer store.Close()
	log.Printf("Database connected (%s).", store.Dialect().Name())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seed.Run(ctx, store); err != nil {
		cancel()
		log.Fatalf("ERROR: Failed to initialize database: %v", err)
	}
	cancel()

	// 4. Initialize Redis cache (optional)
	appCache, closeCache, err := cache.Connect(context.Background(), cfg)
	if err != nil {
		log.Printf("WARN: Redis unavailable, caching disabled: %v", err)
		appCache, closeCache = cache.Noop{}, func() {}
	}
	defer closeCache()

	// 5. Initialize the assistant (optional)
	responder, err := assistant.New(context.Background(), cfg)
	if err != nil {
		log.Printf("WARN: Assistant unavailable, /api/assistant/chat will answer 503: %v", err)
		responder = nil
	}

	// 6. Initialize Repositories
	userRepo := repository.NewUserRepository(store)
	competitionRepo := repository.NewCompetitionRepository(store)
	leaderboardRepo := repository.NewLeaderboardRepository(store)
	challengeRepo := repository.NewChallengeRepository(store)
	quizRepo := repository.NewQuizRepository(store)
	statsRepo := repository.NewStatsRepository(store)

	// 7. Initialize Services
	services := api.Services{
		Auth:         service.NewAuthService(userRepo),
		Competitions: service.NewCompetitionService(competitionRepo, appCache, cfg.CacheTTL),
		Leaderboard:  service.NewLeaderboardService(leaderboardRepo, appCache, cfg.CacheTTL),
		Challenges:   service.NewChallengeService(challengeRepo, appCache, cfg.CacheTTL),
		Quizzes:      service.NewQuizService(quizRepo, userRepo, store, appCache, cfg.CacheTTL, cfg.EnforceAuth),
		Admin:        service.NewAdminService(userRepo),
		Stats:        service.NewStatsService(statsRepo),
		Assistant:    service.NewAssistantService(responder),
	}

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(services, api.Options{
		EnforceAuth: cfg.EnforceAuth,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		TrustProxy:  cfg.TrustProxy,
		StaticDir:   cfg.StaticDir,
	})

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 70 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server running on http://localhost:%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully.")
}
