package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/hsbali/social-media-app-server/config"
	"github.com/hsbali/social-media-app-server/db"
	"github.com/hsbali/social-media-app-server/internal/auth/handler"
	repo "github.com/hsbali/social-media-app-server/internal/auth/repository/postgres"
	"github.com/hsbali/social-media-app-server/internal/auth/service"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	pool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repo.NewUserRepository(pool)
	sessionStore := repo.NewSessionStore(pool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTLSec, cfg.RefreshTokenTTLSec)
	sessionService := service.NewSessionService(sessionStore, tokenService)
	authService := service.NewAuthService(userRepo, sessionService, tokenService)

	authHandler := handler.NewAuthHandler(authService, logger)
	guard := handler.NewAccessGuard(tokenService, userRepo, handler.DefaultRoutePolicy(), logger)

	app := handler.NewApp()
	handler.RegisterRoutes(app, authHandler, guard)

	logger.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	build := zap.NewProduction
	if cfg.IsDev() {
		build = zap.NewDevelopment
	}

	logger, err := build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	return logger
}
