package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edustack/accounts-api/internal/config"
	"github.com/edustack/accounts-api/internal/infrastructure/smtp"
	"github.com/edustack/accounts-api/internal/infrastructure/userstore"
	transporthttp "github.com/edustack/accounts-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	var backend userstore.Backend
	switch cfg.StoreBackend {
	case "s3":
		backend = userstore.NewS3Backend(userstore.NewS3Client(cfg), cfg.S3Bucket, cfg.S3Key)
	default:
		backend = userstore.NewFileBackend(cfg.StorePath)
	}
	store := userstore.New(backend)

	mailer := smtp.NewMailer(cfg)

	deps := &transporthttp.Deps{
		Store:  store,
		Mailer: mailer,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, store=%s)", cfg.AppPort, cfg.AppEnv, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
