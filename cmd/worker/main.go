package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"shop-backend/pkg/container"
	"shop-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize container")
	}
	defer c.Cleanup()

	cfg := c.Config

	handlers := initializeHandlers(c)

	srv, err := startWorker(cfg, handlers)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start worker")
	}

	scheduler, err := startScheduler(cfg)
	if err != nil {
		srv.Shutdown()
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	health := startHealthServer(cfg.Worker.HealthPort, c)

	log.Info().
		Int("concurrency", cfg.Worker.Concurrency).
		Str("expire_carts", cfg.Worker.ExpireCartsSpec).
		Msg("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker", map[string]interface{}{"concurrency": cfg.Worker.Concurrency})
	shutdownHealthServer(health)
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("worker stopped")
}
