package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogdeck/internal/client"
	"blogdeck/internal/config"
	"blogdeck/internal/database"
	"blogdeck/internal/listview"
	"blogdeck/internal/session"
	"blogdeck/internal/templates"
	"blogdeck/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize local storage for the session token
	log.Printf("Initializing database at %s", cfg.DBPath)
	if err := database.Open(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	store := session.NewPersistentStore()
	api, err := client.New(cfg.APIURL, store)
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}
	if !api.SignedIn() {
		log.Printf("No stored session, sign in at http://%s/signin", cfg.Addr)
	}

	view := listview.New(api, listview.Options{Limit: cfg.PageSize, Scope: cfg.Scope})
	defer view.Close()

	renderer, err := templates.New()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	srv := web.New(api, view, renderer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting blogdeck on %s (API %s)", cfg.Addr, cfg.APIURL)
		if err := srv.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: shutdown: %v", err)
	}
}
