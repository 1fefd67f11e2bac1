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

	"github.com/Franklivania/go-to-market/internal/backup"
	"github.com/Franklivania/go-to-market/internal/database"
	"github.com/Franklivania/go-to-market/internal/logging"
	"github.com/Franklivania/go-to-market/internal/payment"
	"github.com/Franklivania/go-to-market/internal/server"
)

func main() {
	port := envOr("GTM_PORT", "8080")
	dbPath := envOr("GTM_DB_PATH", "gtm.db")

	logger := logging.Setup(os.Getenv("GTM_LOG_LEVEL"), os.Getenv("GTM_LOG_FORMAT"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	cfg := server.Config{
		Stripe: payment.Config{
			SecretKey:     os.Getenv("GTM_STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("GTM_STRIPE_WEBHOOK_SECRET"),
			SuccessURL:    os.Getenv("GTM_STRIPE_SUCCESS_URL"),
			CancelURL:     os.Getenv("GTM_STRIPE_CANCEL_URL"),
		},
		Backup: backup.Config{
			S3: backup.S3Config{
				Endpoint:  os.Getenv("GTM_S3_ENDPOINT"),
				Bucket:    os.Getenv("GTM_S3_BUCKET"),
				Region:    envOr("GTM_S3_REGION", "auto"),
				AccessKey: os.Getenv("GTM_S3_ACCESS_KEY"),
				SecretKey: os.Getenv("GTM_S3_SECRET_KEY"),
			},
			DBPath:     dbPath,
			Passphrase: os.Getenv("GTM_BACKUP_PASSPHRASE"),
			Interval:   backupInterval(),
		},
		Push: server.PushConfig{
			VAPIDPublicKey:  os.Getenv("GTM_VAPID_PUBLIC_KEY"),
			VAPIDPrivateKey: os.Getenv("GTM_VAPID_PRIVATE_KEY"),
		},
	}

	srv, err := server.New(db, cfg, logger)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv.BackupManager().Start(ctx)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Go To Market running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	cancel()
	srv.BackupManager().Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// backupInterval parses GTM_BACKUP_INTERVAL (e.g. "24h"). Zero disables
// the schedule; on-demand backups still work.
func backupInterval() time.Duration {
	v := os.Getenv("GTM_BACKUP_INTERVAL")
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid GTM_BACKUP_INTERVAL %q, scheduling disabled", v)
		return 0
	}
	return d
}
