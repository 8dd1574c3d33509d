package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"personDirectory/internal/config"
	"personDirectory/internal/db"
	"personDirectory/internal/server"
	"personDirectory/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	people := repository.NewPersonRepository(d)

	// Start HTTP API
	shutdown, err := server.StartHTTP(cfg, people)
	if err != nil {
		log.Fatalf("start http: %v", err)
	}
	log.Printf("HTTP server listening on %s", cfg.HTTP.Address)

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
