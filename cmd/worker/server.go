package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/config"
	"shop-backend/internal/infrastructure/queue"
	"shop-backend/internal/shared"
	"shop-backend/pkg/container"
)

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Redis.Host, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
}

// startWorker runs the asynq server in the background.
func startWorker(cfg *config.Config, handlers *HandlerRegistry) (*asynq.Server, error) {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Queues:          shared.QueuePriorities,
		Concurrency:     cfg.Worker.Concurrency,
		ShutdownTimeout: 30 * time.Second,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			log.Error().Err(err).
				Str("task", task.Type()).
				Int("retry", retried).
				Int("max_retry", maxRetry).
				Msg("task failed")
		}),
	})

	if err := srv.Start(mux); err != nil {
		return nil, err
	}
	return srv, nil
}

func startScheduler(cfg *config.Config) (*queue.Scheduler, error) {
	scheduler := queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := scheduler.RegisterJobs(cfg.Worker.ExpireCartsSpec); err != nil {
		return nil, err
	}
	if err := scheduler.Start(); err != nil {
		return nil, err
	}
	return scheduler, nil
}

// startHealthServer exposes liveness and readiness endpoints for the worker.
func startHealthServer(port string, c *container.Container) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "shop-worker"})
	})
	r.GET("/ready", func(ctx *gin.Context) {
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "READY"})
	})
	r.GET("/metrics", gin.WrapH(c.Metrics.Handler()))

	srv := &http.Server{Addr: ":" + port, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("worker health server failed")
		}
	}()
	return srv
}

func shutdownHealthServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("worker health server shutdown")
	}
}
