package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ypliao/gardenlog/internal/blob"
	"github.com/ypliao/gardenlog/internal/config"
	"github.com/ypliao/gardenlog/internal/domain/activity"
	"github.com/ypliao/gardenlog/internal/domain/project"
	"github.com/ypliao/gardenlog/internal/domain/score"
	"github.com/ypliao/gardenlog/internal/jsonstore"
	"github.com/ypliao/gardenlog/internal/mcp"
	"github.com/ypliao/gardenlog/internal/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	docs, err := jsonstore.New(cfg.Storage.DataDir, logger)
	if err != nil {
		logger.Error("failed to prepare data directory", "error", err)
		os.Exit(1)
	}

	projectRepo := jsonstore.NewProjectRepository(docs, logger)
	scoreRepo := jsonstore.NewScoreRepository(docs, logger)
	blobs := blob.New(cfg.Storage.PhotosDir)

	// The activity log is auxiliary: if SQLite can't be opened the
	// server runs without it rather than refusing to start.
	activitySvc := openActivityLog(cfg.Storage.ActivityDBPath, logger)

	projectSvc := project.NewService(projectRepo, blobs, activitySvc, logger)
	scoreSvc := score.NewService(scoreRepo, activitySvc, logger)

	services := mcp.Services{
		Projects: projectSvc,
		Scores:   scoreSvc,
	}
	if activitySvc != nil {
		services.Activity = activitySvc
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: services,
		Logger:   logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
	} else {
		runHTTPMode(logger, mcpServer, cfg.Server.Host, cfg.Server.Port)
	}
}

func openActivityLog(path string, logger *slog.Logger) *activity.Service {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("activity log disabled", "error", err)
			return nil
		}
	}
	db, err := sqlite.New(path)
	if err != nil {
		logger.Warn("activity log disabled", "error", err)
		return nil
	}
	if err := db.RunMigrations(); err != nil {
		logger.Warn("activity log disabled", "error", err)
		db.Close()
		return nil
	}
	return activity.NewService(sqlite.NewActivityRepository(db), logger)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	transport := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
