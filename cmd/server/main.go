package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/singul69/My-chat-app/internal/api"
	"github.com/singul69/My-chat-app/internal/api/handlers"
	"github.com/singul69/My-chat-app/internal/billing"
	"github.com/singul69/My-chat-app/internal/chat"
	"github.com/singul69/My-chat-app/internal/config"
	"github.com/singul69/My-chat-app/internal/media"
	"github.com/singul69/My-chat-app/internal/seed"
	"github.com/singul69/My-chat-app/internal/store"
)

// @title LoveChat API
// @version 1.0
// @description Virtual companion chat with premium entitlement via manually verified UPI payments.
// @BasePath /
func main() {
	cfg := config.Envs

	var st store.Store
	if cfg.DB_URL != "" {
		var err error
		st, err = store.Connect(cfg.DB_URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
	} else {
		// No database configured: run on the in-memory store. State is
		// lost on restart.
		log.Println("DB_URL not set, using in-memory store")
		st = store.NewMemory()
	}

	if err := seed.Run(context.Background(), st); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	var mediaClient *media.R2Client
	if cfg.R2.Enabled() {
		mediaClient = media.NewR2(cfg.R2)
		log.Println("Media uploads enabled")
	}

	chatSvc := chat.NewService(st, nil)
	billingSvc := billing.NewService(st)

	h := handlers.New(st, chatSvc, billingSvc, mediaClient,
		cfg.JWTSecret, cfg.Environment == "production")

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(h, st, cfg.CorsConfig, cfg.JWTSecret),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting LoveChat server on port: %s", cfg.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on port %s: %v", cfg.Port, err)
	}
}
