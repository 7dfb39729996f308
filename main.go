package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ipss-cms/config"
	"ipss-cms/database"
	"ipss-cms/logger"
	"ipss-cms/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.LogLevel, Dev: cfg.LogDev, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(database.Config{
		Driver: cfg.DBDriver,
		DSN:    cfg.DatabaseURL,
		Debug:  !cfg.IsProduction() && cfg.LogLevel == "debug",
	}, zlog)
	if err != nil {
		zlog.Fatal("connect database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		zlog.Fatal("migrate database", zap.Error(err))
	}

	srv, err := server.New(cfg, db, zlog)
	if err != nil {
		zlog.Fatal("build server", zap.Error(err))
	}

	if cfg.SeedAdminEmail != "" && cfg.SeedAdminPassword != "" {
		created, err := srv.Users.EnsureAdmin(context.Background(), cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
		if err != nil {
			zlog.Fatal("seed admin", zap.Error(err))
		}
		if created {
			zlog.Info("created initial admin", zap.String("email", cfg.SeedAdminEmail))
		}
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	zlog.Info("shutting down")
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("graceful shutdown error", zap.Error(err))
	}
}
