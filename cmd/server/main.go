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

	"delipucash/internal/config"
	"delipucash/internal/db"
	"delipucash/internal/logger"
	"delipucash/internal/middleware"
	"delipucash/internal/router"
	"delipucash/internal/store"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := config.Load()
	logg := logger.New(cfg)

	var s store.Store
	switch cfg.Database.Driver {
	case "memory":
		logg.Warn("Using in-memory store, data is lost on restart")
		s = store.NewMemoryStore()
	default:
		gdb, err := db.Init(cfg, logg)
		if err != nil {
			logg.WithError(err).Fatal("Failed to initialize database")
		}
		defer func() {
			if sqlDB, err := gdb.DB(); err == nil {
				sqlDB.Close()
			}
		}()
		s = store.NewGormStore(gdb)
	}

	engine, err := router.New(cfg, s, logg)
	if err != nil {
		logg.WithError(err).Fatal("Failed to build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           middleware.CORS(cfg.CORS, logg)(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.WithFields(logrus.Fields{
			"port":        cfg.Server.Port,
			"environment": cfg.Server.Env,
			"store":       cfg.Database.Driver,
		}).Info("DelipuCash API server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.WithError(err).Fatal("Server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logg.WithError(err).Error("Graceful shutdown failed")
	}
	logg.Info("Server exited")
}
