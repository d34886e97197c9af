package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"shop-backend/pkg/logger"
)

func main() {
	// .env is optional; deployments use the process environment.
	envErr := godotenv.Load()

	env := os.Getenv("APP_ENV")
	logger.Init(env, os.Getenv("LOG_LEVEL"))
	if envErr != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	Serve()
}
