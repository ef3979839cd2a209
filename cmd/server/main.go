package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/proofmesh/basalt/internal/logger"
	"github.com/proofmesh/basalt/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	lg, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	srv, err := server.NewServer(context.Background(), lg)
	if err != nil {
		lg.Fatal("Failed to initialize server", "error", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := srv.SetupRouter()
	lg.Info("Starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		lg.Fatal("Server exited", "error", err)
	}
}
