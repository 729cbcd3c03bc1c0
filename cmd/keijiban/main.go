package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/keijiban-dev/keijiban/internal/config"
	"github.com/keijiban-dev/keijiban/internal/logger"
	"github.com/keijiban-dev/keijiban/internal/router"
	"github.com/keijiban-dev/keijiban/internal/setup"
)

func main() {
	_ = godotenv.Load() // optional .env, real env wins

	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (development defaults when empty)")
	flag.Parse()

	var cfg *config.Config
	if configPath != "" {
		cfg = config.MustLoad(configPath)
	} else {
		cfg = config.Default()
		cfg.ApplyEnv()
	}
	logger.Initialize(cfg.Logging.Level, cfg.Logging.JSON)

	if err := cfg.Validate(); err != nil {
		logger.Log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router.New(deps),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.Info("server started", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("shutdown error", "error", err)
	}
}
