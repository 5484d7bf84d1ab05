package app

import (
	"context"
	"time"

	"github.com/axis-labs/axis-backend/internal/config"
	"github.com/axis-labs/axis-backend/internal/database"
	"github.com/axis-labs/axis-backend/internal/middleware"
	"github.com/axis-labs/axis-backend/internal/pkg/cron"
	"github.com/axis-labs/axis-backend/internal/pkg/metrics"
	"github.com/axis-labs/axis-backend/internal/pkg/privy"
	redispkg "github.com/axis-labs/axis-backend/internal/pkg/redis"
	sessionpkg "github.com/axis-labs/axis-backend/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// How long expired or revoked sessions are kept before the cleanup job
// removes the rows.
const sessionRetention = 7 * 24 * time.Hour

// App wires configuration, storage, the Privy verifier and the HTTP router
// into a runnable service.
type App struct {
	cfg     *config.AppConfig
	log     *zap.Logger
	db      *gorm.DB
	redis   *redispkg.Client
	engine  *gin.Engine
	metrics *metrics.Collector
	cron    *cron.Scheduler
}

// New builds the application: connects MySQL and Redis, constructs the Privy
// client, and registers middleware, routes and background jobs.
func New(log *zap.Logger, cfg *config.AppConfig) (*App, error) {
	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, err
	}

	rdb, err := redispkg.Connect(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	verifier, err := privy.New(privy.Config{
		AppID:           cfg.Privy.AppID,
		AppSecret:       cfg.Privy.AppSecret,
		VerificationKey: cfg.Privy.VerificationKey,
	})
	if err != nil {
		return nil, err
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	collector := metrics.NewCollector()

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.Logger(log),
		middleware.Metrics(collector),
		corsMiddleware(cfg),
		middleware.OptionalSession(db),
		middleware.RateLimit(rdb.Raw()),
		middleware.Idempotence(rdb.Raw()),
	)

	a := &App{
		cfg:     cfg,
		log:     log,
		db:      db,
		redis:   rdb,
		engine:  engine,
		metrics: collector,
		cron:    cron.New(),
	}
	a.registerRoutes(verifier)
	a.registerJobs()
	return a, nil
}

// Engine exposes the router for the HTTP server.
func (a *App) Engine() *gin.Engine { return a.engine }

// Start launches background jobs. They stop when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	a.cron.Start(ctx)
}

// Close releases external connections.
func (a *App) Close() {
	if err := a.redis.Close(); err != nil {
		a.log.Warn("redis close failed", zap.Error(err))
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Warn("database close failed", zap.Error(err))
		}
	}
}

func (a *App) registerJobs() {
	a.cron.Register(cron.Job{
		Name:     "purge_stale_sessions",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			removed, err := sessionpkg.PurgeStale(a.db, sessionRetention)
			if err != nil {
				a.log.Error("session cleanup failed", zap.Error(err))
				return err
			}
			if removed > 0 {
				a.log.Info("session cleanup", zap.Int64("removed", removed))
			}
			return nil
		},
	})
}
