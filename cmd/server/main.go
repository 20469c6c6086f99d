package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/teamly-api/internal/config"
	"github.com/yukikurage/teamly-api/internal/constants"
	"github.com/yukikurage/teamly-api/internal/database"
	"github.com/yukikurage/teamly-api/internal/handlers"
	"github.com/yukikurage/teamly-api/internal/identity"
	"github.com/yukikurage/teamly-api/internal/metrics"
	"github.com/yukikurage/teamly-api/internal/middleware"
	"github.com/yukikurage/teamly-api/internal/repository"
	"github.com/yukikurage/teamly-api/internal/services"
	"github.com/yukikurage/teamly-api/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	recorder := metrics.NewPrometheusRecorder()

	backend, err := openBackend(cfg)
	if err != nil {
		slog.Error("failed to open record store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}

	recordStore := store.New(backend, store.Options{
		SerializeWrites: cfg.Store.SerializeWrites,
		Observer:        recorder,
	})
	if err := recordStore.Init(context.Background()); err != nil {
		slog.Error("failed to initialize record store", "error", err)
		os.Exit(1)
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(recordStore)
	projectRepo := repository.NewProjectRepository(recordStore)
	taskRepo := repository.NewTaskRepository(recordStore)

	authService := services.NewAuthService(userRepo, identity.NewService(cfg.Auth.JWTSecret, cfg.Auth.BCryptCost), cfg.Auth.AccessTokenTTL)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, newTaskGenerator(cfg))

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), recorder.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.Session.Enabled {
		sessionStore, err := newSessionStore(cfg)
		if err != nil {
			slog.Error("failed to create session store", "store", cfg.Session.Store, "error", err)
			os.Exit(1)
		}
		r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))
	}

	routes := handlers.Routes{
		Auth:        handlers.NewAuthHandler(authService),
		Projects:    handlers.NewProjectHandler(projectService),
		Tasks:       handlers.NewTaskHandler(taskService),
		RequireAuth: middleware.RequireAuth(authService),
		Health:      handlers.Health(recordStore),
	}
	if cfg.RateLimit.Enabled {
		routes.CredentialLimit = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstSize).Middleware()
	}
	handlers.RegisterRoutes(r, routes)
	r.GET("/metrics", gin.WrapH(recorder.Handler()))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Store.Backend {
	case "sql":
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		return store.NewSQLBackend(db), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return store.NewRedisBackend(client, cfg.Store.RedisPrefix), nil
	default:
		return store.NewFileBackend(cfg.Store.DataDir)
	}
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	options := sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}

	if cfg.Session.Store == "redis" {
		s, err := redisStore.NewStore(10, "tcp", cfg.GetRedisAddr(), cfg.Redis.Password, []byte(cfg.Session.Secret))
		if err != nil {
			return nil, err
		}
		s.Options(options)
		return s, nil
	}

	s := cookie.NewStore([]byte(cfg.Session.Secret))
	s.Options(options)
	return s, nil
}

func newTaskGenerator(cfg *config.Config) services.TaskGenerator {
	if cfg.AI.OpenAIAPIKey == "" {
		return nil
	}
	if cfg.AI.BaseURL == "" {
		return services.NewAIService(cfg.AI.OpenAIAPIKey, cfg.AI.Model)
	}
	clientCfg := openai.DefaultConfig(cfg.AI.OpenAIAPIKey)
	clientCfg.BaseURL = cfg.AI.BaseURL
	return services.NewAIServiceWithConfig(clientCfg, cfg.AI.Model)
}
