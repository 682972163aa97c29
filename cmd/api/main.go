package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	"github.com/BruksfildServices01/agenda-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/agenda-scheduler/internal/db"
	"github.com/BruksfildServices01/agenda-scheduler/internal/lock"
	"github.com/BruksfildServices01/agenda-scheduler/internal/logger"
	"github.com/BruksfildServices01/agenda-scheduler/internal/middleware"
	"github.com/BruksfildServices01/agenda-scheduler/internal/routes"
	"github.com/BruksfildServices01/agenda-scheduler/internal/timezone"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	log := logger.New("agenda-scheduler", cfg.LogLevel)

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	if err := dbpkg.Migrate(db, log); err != nil {
		log.Error("migration failed", "err", err)
		os.Exit(1)
	}

	// --------------------------------------------------
	// Trava de horário: Redis se configurado, senão local
	// --------------------------------------------------
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("invalid REDIS_URL", "err", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		locker = lock.NewRedisLocker(rdb, cfg.SlotLockTTL, cfg.SlotLockWait, log)
		log.Info("slot lock enabled (redis)", "redis_addr", opts.Addr)
	} else {
		log.Warn("REDIS_URL not set, using in-process slot lock")
	}

	dispatcher := audit.NewDispatcher(audit.New(db), cfg.AuditQueueSize, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.CORSMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Locker: locker,
		Audit:  dispatcher,
		Now:    timezone.Clock(cfg.Timezone),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", "err", err)
	}

	// grava o que ainda estiver na fila de auditoria
	dispatcher.Close()
	log.Info("http server stopped")
}
