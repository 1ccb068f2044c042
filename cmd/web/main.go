package main

import (
	"afisha_backend/internal/app"
	"afisha_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("main service stopped", "error", err)
	}
}
