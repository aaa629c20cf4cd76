package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"orderbot-backend/pkg/container"
	"orderbot-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	logger.Init(os.Getenv("APP_ENV"))

	ctx := context.Background()
	c, err := container.New(ctx)
	if err != nil {
		logger.Error("failed to initialize application", err)
		os.Exit(1)
	}
	defer c.Close()

	if err := runServer(c); err != nil {
		logger.Error("server exited with error", err)
		os.Exit(1)
	}
}
