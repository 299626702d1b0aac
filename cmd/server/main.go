package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/minimalism/blog-be/internal/config"
	"github.com/minimalism/blog-be/internal/server"
	"github.com/minimalism/blog-be/internal/storage/postgres"
	"github.com/minimalism/blog-be/internal/upload"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer store.Close()

	avatars, err := newAvatarStore(ctx, cfg)
	if err != nil {
		log.Fatalf("init avatar store: %v", err)
	}

	srv := server.New(cfg, store, avatars)

	go func() {
		log.Printf("minimalism backend listening on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func newAvatarStore(ctx context.Context, cfg config.Config) (upload.Store, error) {
	if cfg.UploadDriver == "s3" {
		return upload.NewS3Store(ctx, upload.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return upload.NewDiskStore(cfg.UploadDir)
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
