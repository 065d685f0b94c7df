package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"portfolio_backend/internal/email"
	"portfolio_backend/internal/scheduler"
	"portfolio_backend/platform/config"
	"portfolio_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env, cfg.LogLevel)
	log.Info("starting notification worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.IsRedisEnabled() {
		panic("REDIS_URL is required for the notification worker")
	}

	sender := email.NewSender(cfg)
	if !cfg.IsSMTPEnabled() {
		log.Warn("SMTP not configured; contact notifications will be dropped")
	}
	if cfg.GetContactNotifyEmail() == "" {
		log.Warn("CONTACT_NOTIFY_EMAIL not configured; only auto-replies are sent")
	}

	concurrency := getPositiveIntEnv("WORKER_CONCURRENCY", 10)
	worker, err := scheduler.NewWorker(cfg, concurrency, sender, log.Component("worker"))
	if err != nil {
		log.Error("failed to initialize notification worker", "error", err)
		panic("failed to initialize notification worker: " + err.Error())
	}

	worker.Run(ctx)
}

func getPositiveIntEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}
