package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noteful/config"
	"noteful/handler"
	"noteful/middleware"
	"noteful/repository"
	"noteful/services"
	"noteful/usecase"
	"noteful/utils"

	"github.com/gin-gonic/gin"
)

type routerDeps struct {
	notesService *usecase.NotesService
	db           handler.Pinger
	logger       *slog.Logger
	limiter      *middleware.ClientRateLimiter
	server       config.ServerConfig
}

func setupRouter(deps routerDeps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.RequestLogger(deps.logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(deps.server.AllowedOrigins))
	router.Use(middleware.RateLimitMiddleware(deps.limiter))
	router.Use(middleware.RequestSizeLimiter(deps.server.MaxBodyBytes))

	router.GET("/metrics", middleware.MetricsHandler())

	api := router.Group("/api")
	api.Use(middleware.CacheControlMiddleware("no-store"))
	{
		healthHandler := handler.NewHealthHandler(deps.db, deps.notesService)
		api.GET("/health", healthHandler.GetHealth)

		notesHandler := handler.NewNotesHandler(deps.notesService)
		notesHandler.RegisterRoutes(api)
	}

	return router
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := utils.InitLogger(cfg.LogLevel, os.Stdout)
	cfg.LogSummary(logger)
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	client, err := utils.NewMongoClient(connectCtx, cfg.Database.ClientOptions())
	cancel()
	if err != nil {
		return fmt.Errorf("error connecting to MongoDB: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	notesRepo := repository.GetNotesRepo(client, cfg.Database.DatabaseName, cfg.Database.Collection)
	notesRepo.OpTimeout = cfg.Database.OpTimeout

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = repository.SetupIndexes(indexCtx, notesRepo.MongoCollection)
	cancel()
	if err != nil {
		return fmt.Errorf("error creating indexes: %w", err)
	}

	notesService := &usecase.NotesService{NotesRepo: notesRepo}
	if cfg.Cache.Enabled() {
		noteCache, err := services.NewNoteCache(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
		if err != nil {
			// the cache is optional; serve straight from Mongo
			logger.Warn("note cache disabled", "error", err)
		} else {
			notesService.Cache = noteCache
			defer noteCache.Close()
		}
	}

	var limiter *middleware.ClientRateLimiter
	if cfg.RateLimit.Enabled() {
		limiter = middleware.NewClientRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.RunCleanup(time.Minute, ctx.Done())
	}

	router := setupRouter(routerDeps{
		notesService: notesService,
		db:           notesRepo,
		logger:       logger,
		limiter:      limiter,
		server:       cfg.Server,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, draining connections",
		"timeout", cfg.Server.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server shutdown complete")
	return nil
}
