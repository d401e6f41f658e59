package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/erezadam/GymIq-sub000/internal/api"
	"github.com/erezadam/GymIq-sub000/internal/auth"
	"github.com/erezadam/GymIq-sub000/internal/config"
	"github.com/erezadam/GymIq-sub000/internal/database"
	"github.com/erezadam/GymIq-sub000/internal/generation"
	"github.com/erezadam/GymIq-sub000/internal/llm"
	"github.com/erezadam/GymIq-sub000/internal/middleware"
	"github.com/erezadam/GymIq-sub000/internal/quota"
	iredis "github.com/erezadam/GymIq-sub000/internal/redis"
	"github.com/erezadam/GymIq-sub000/internal/server"
	"github.com/erezadam/GymIq-sub000/internal/workouts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	ctx := context.Background()

	// PostgreSQL
	pool, err := database.NewPostgresPool(ctx, cfg.DB)
	if err != nil {
		slog.Error("connecting to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.DB.MigrationsPath != "" {
		if err := database.RunMigrations(cfg.DB.DSN(), cfg.DB.MigrationsPath); err != nil {
			slog.Error("running migrations", "error", err)
			os.Exit(1)
		}
	}

	// Redis
	redisClient, err := iredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		slog.Error("connecting to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// LM client handle — built once, shared for the process lifetime
	llm.Configure(cfg.LLM)

	// Quota gate
	gate := quota.NewGate(quota.NewRedisStore(redisClient), cfg.Generation.DailyLimit)

	// Generation pipeline
	historyRepo := workouts.NewRepository(pool)
	genSvc := generation.NewService(gate, llm.Default(), cfg.LLM.MaxTokens)
	genHandler := generation.NewHandler(genSvc, historyRepo, cfg.Generation.HistoryWindow)

	// Auth (verify-only; tokens are minted by the platform's auth service)
	jwtManager := auth.NewJWTManager(cfg.JWT.AccessSecret)

	// Per-IP burst protection on the generation endpoint
	rateLimiter := middleware.NewRateLimiter(redisClient,
		cfg.Generation.RateLimitPerIP, cfg.Generation.RateLimitWin)

	// Router
	router := api.NewRouter(pool, redisClient, api.RouterConfig{
		CORSAllowedOrigins:  cfg.CORS.AllowedOrigins,
		GenerateRateLimiter: rateLimiter.Middleware,
	}, api.HandlerSet{
		Generate:           genHandler.Generate,
		GetQuota:           genHandler.GetQuota,
		ListRecentWorkouts: genHandler.ListRecent,

		AuthMiddleware: auth.Middleware(jwtManager),
	})

	// Start server
	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
