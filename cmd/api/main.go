package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio_backend/internal/access"
	"portfolio_backend/internal/adapters/storage"
	"portfolio_backend/internal/ai"
	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/blog"
	"portfolio_backend/internal/clients"
	"portfolio_backend/internal/contact"
	apphttp "portfolio_backend/internal/http"
	"portfolio_backend/internal/http/router"
	"portfolio_backend/internal/projects"
	"portfolio_backend/internal/scheduler"
	"portfolio_backend/internal/search"
	searchservice "portfolio_backend/internal/search/service"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/teammembers"
	"portfolio_backend/internal/teams"
	"portfolio_backend/internal/testimonials"
	"portfolio_backend/internal/uploads"
	"portfolio_backend/migrations"
	"portfolio_backend/platform/ai/chatcompletion"
	"portfolio_backend/platform/config"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/events"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"google.golang.org/adk/model"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env, cfg.LogLevel)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	if cfg.MigrateOnStart {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, pool, migrations.FS)
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	rdb := initRedis(ctx, cfg, log)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	notifyQueue, closeQueue := initNotifyQueue(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}
	scheduler.Subscribe(eventBus, notifyQueue, log.Component("scheduler"))

	// Shared validator instance for dependency injection
	val := validator.New()

	store := initStorage(ctx, cfg, log)
	llm := initLLM(cfg, log)

	permissions, err := access.Default()
	if err != nil {
		log.Error("failed to load permission table", "error", err)
		panic("failed to load permission table: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, val, log)
	servicesModule := services.NewModule(pool, val, log)
	projectsModule := projects.NewModule(pool, val, log)
	clientsModule := clients.NewModule(pool, val, log)
	membersModule := teammembers.NewModule(pool, val, log)
	teamsModule := teams.NewModule(pool, val, log)
	blogModule := blog.NewModule(pool, val, log)
	testimonialsModule := testimonials.NewModule(pool, val, log)
	contactModule := contact.NewModule(pool, val, log, eventBus)

	searchModule := search.NewModule(searchservice.Sources{
		Services:     servicesModule.Service(),
		Projects:     projectsModule.Service(),
		Members:      membersModule.Service(),
		Blog:         blogModule.Service(),
		Testimonials: testimonialsModule.Service(),
	}, rdb, log)

	aiModule := ai.NewModule(pool, llm, val, log)
	uploadsModule := uploads.NewModule(pool, store, cfg.GetMinIOMaxFileSize(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		EventBus: eventBus,
		Access:   permissions,
		Modules: []apphttp.Module{
			authModule,
			servicesModule,
			projectsModule,
			clientsModule,
			membersModule,
			teamsModule,
			blogModule,
			testimonialsModule,
			contactModule,
			searchModule,
			aiModule,
			uploadsModule,
		},
	}

	srv := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router.New(app),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initRedis connects the search analytics store. Search keeps working
// without it.
func initRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_URL not configured; search analytics and contact notifications disabled")
		return nil
	}
	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL", "error", err)
		return nil
	}
	rdb := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable; continuing", "error", err)
	}
	return rdb
}

func initNotifyQueue(cfg config.RedisConfig, log *logger.Logger) (scheduler.Enqueuer, func()) {
	if !cfg.IsRedisEnabled() {
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize notification queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

// initStorage returns nil when MinIO is off or unreachable, which makes the
// upload routes answer 503.
func initStorage(ctx context.Context, cfg storage.Config, log *logger.Logger) storage.StorageService {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; uploads disabled")
		return nil
	}

	svc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		return nil
	}
	if err := withRetry(ctx, log, "ensure uploads bucket", 5, 2*time.Second, func() error {
		return svc.EnsureBucketExists(ctx)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinIOBucketUploads())
		return nil
	}
	log.Info("storage service initialized", "bucket", cfg.GetMinIOBucketUploads(), "publicUrl", storage.BaseURL(cfg))
	return svc
}

func initLLM(cfg config.AIConfig, log *logger.Logger) model.LLM {
	if !cfg.IsAIEnabled() {
		log.Warn("AI_API_KEY not configured; AI routes serve fallback responses")
		return nil
	}
	m := chatcompletion.NewModel(chatcompletion.Config{
		APIKey:  cfg.GetAIAPIKey(),
		BaseURL: cfg.GetAIBaseURL(),
		Model:   cfg.GetAIModel(),
	})
	log.Info("AI model initialized", "model", m.Name())
	return m
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
