// Package main is the entry point for the driver registry API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/esturismo/motoristas/internal/backup"
	"github.com/esturismo/motoristas/internal/config"
	"github.com/esturismo/motoristas/internal/handler"
	"github.com/esturismo/motoristas/internal/logging"
	"github.com/esturismo/motoristas/internal/metrics"
	"github.com/esturismo/motoristas/internal/middleware"
	"github.com/esturismo/motoristas/internal/repo"
	"github.com/esturismo/motoristas/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger, logCloser := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer logCloser.Close()

	// --- Storage ----------------------------------------------------------
	// The record store is a single JSON file; the archive is a directory
	// tree keyed by driver id. Both are created lazily on first write.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	drivers := repo.NewDriverRepo(cfg.DataFile, logger, m)
	files := repo.NewFileArchive(cfg.UploadDir)
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Error("failed to create upload directory", "path", cfg.UploadDir, "error", err)
		os.Exit(1)
	}
	logger.Info("storage ready", "data_file", cfg.DataFile, "upload_dir", cfg.UploadDir)

	driverSvc := service.NewDriverService(drivers, files, logger, m, cfg.WarnWindowDays)
	exporter := backup.NewExporter(backup.Sources{
		RecordsFile: drivers.Path(),
		ArchiveRoot: files.Root(),
	}, cfg.BackupDir, logger, m)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body size limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxUploadBytes))

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Mount("/", handler.NewServer(driverSvc, exporter, logger).Handler())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout is generous because /backup streams the whole archive.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
