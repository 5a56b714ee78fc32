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
	"github.com/habitledger/internal/config"
	"github.com/habitledger/internal/db"
	"github.com/habitledger/internal/handler"
	"github.com/habitledger/internal/logger"
	"github.com/habitledger/internal/metrics"
	"github.com/habitledger/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog, err := logger.New(logger.Options{Mode: cfg.LogMode, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	metrics.Register()

	loc, err := cfg.Location()
	if err != nil {
		appLog.Fatal("invalid_timezone", "timezone", cfg.Timezone, "error", err)
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		appLog.Fatal("database_init_failed", "path", cfg.DatabasePath, "error", err)
	}

	gin.SetMode(cfg.GinMode)

	api := handler.NewAPI(db.DB, handler.Options{
		Location:    loc,
		Logger:      appLog,
		HeatmapDays: cfg.HeatmapDays,
	})

	// 启动时对齐一次徽章状态，补发缺失的解锁提醒
	if _, err := api.Progress().ReconcileBadges(); err != nil {
		appLog.Warn("badge_reconcile_failed", "error", err)
	}

	r := router.SetupRouter(router.Options{
		API:         api,
		Logger:      appLog,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("starting_http_server", "addr", cfg.ListenAddr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("http_server_failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting_down_server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("server_forced_shutdown", "error", err)
	}

	if sqlDB, err := db.DB.DB(); err == nil {
		sqlDB.Close()
	}
	appLog.Info("server_stopped")
}
