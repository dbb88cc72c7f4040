package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/livejourney/api/internal/config"
	"github.com/livejourney/api/internal/handler"
	"github.com/livejourney/api/internal/jobs"
	"github.com/livejourney/api/internal/middleware"
	"github.com/livejourney/api/internal/repository"
	"github.com/livejourney/api/internal/service"
	"github.com/livejourney/api/internal/storage"
	"github.com/livejourney/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize storage
	store := storage.NewSurrealStore(storage.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
	})

	ctx := context.Background()
	if err := store.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(store)
	activityRepo := repository.NewActivityRepository(store)
	badgeRepo := repository.NewBadgeRepository(store)
	titleRepo := repository.NewTitleRepository(store)

	// Initialize services
	locks := service.NewUserLocks()

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:   userRepo,
		JWTService: jwtService,
	})

	activityService := service.NewActivityService(activityRepo)
	statsService := service.NewStatsService(activityRepo, cfg.Location())
	levelService := service.NewLevelService(statsService, badgeRepo)

	badgeService := service.NewBadgeService(service.BadgeServiceConfig{
		BadgeRepo: badgeRepo,
		Locks:     locks,
	})

	titleService := service.NewTitleService(service.TitleServiceConfig{
		TitleRepo:      titleRepo,
		ActivityRepo:   activityRepo,
		Locks:          locks,
		Location:       cfg.Location(),
		LikesThreshold: cfg.Engine.TitleLikesThreshold,
	})

	progressionService := service.NewProgressionService(service.ProgressionServiceConfig{
		Stats:  statsService,
		Levels: levelService,
		Badges: badgeService,
		Titles: titleService,
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	activityHandler := handler.NewActivityHandler(activityService, progressionService)
	progressionHandler := handler.NewProgressionHandler(handler.ProgressionHandlerConfig{
		StatsService: statsService,
		LevelService: levelService,
		BadgeService: badgeService,
		TitleService: titleService,
	})

	// Start background jobs
	titleSweeper := jobs.NewTitleSweeper(titleService, cfg.Engine.TitleSweepInterval)
	titleSweeper.Start()
	defer titleSweeper.Stop()

	// Routes
	authMiddleware := middleware.Auth(authService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handler.Health)

	// Auth endpoints
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// Activity endpoints
	mux.Handle("POST /v1/activities", authMiddleware(http.HandlerFunc(activityHandler.Create)))
	mux.Handle("GET /v1/activities", authMiddleware(http.HandlerFunc(activityHandler.Feed)))
	mux.Handle("POST /v1/activities/{id}/likes", authMiddleware(http.HandlerFunc(activityHandler.Like)))
	mux.Handle("POST /v1/activities/{id}/comments", authMiddleware(http.HandlerFunc(activityHandler.Comment)))
	mux.Handle("DELETE /v1/activities/{id}", authMiddleware(http.HandlerFunc(activityHandler.Delete)))

	// Progression endpoints
	mux.Handle("GET /v1/users/me/level", authMiddleware(http.HandlerFunc(progressionHandler.Level)))
	mux.Handle("GET /v1/users/me/badges", authMiddleware(http.HandlerFunc(progressionHandler.Badges)))
	mux.Handle("GET /v1/users/me/stats", authMiddleware(http.HandlerFunc(progressionHandler.Stats)))
	mux.Handle("GET /v1/users/me/title", authMiddleware(http.HandlerFunc(progressionHandler.MyTitle)))
	mux.Handle("GET /v1/users/{userId}/title", authMiddleware(http.HandlerFunc(progressionHandler.UserTitle)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
