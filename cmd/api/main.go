package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"billpop-backend/pkg/logger"
)

func main() {
	dotenvErr := godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	if dotenvErr != nil {
		logger.Warn("no .env file found, using environment variables", nil)
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := Serve(); err != nil {
		logger.Error("server exited with error", err)
		os.Exit(1)
	}
}
