package server

import (
	"context"
	"net"
	"net/http"

	"personDirectory/internal/config"
	"personDirectory/repository"
)

// StartHTTP starts the HTTP API on the configured address and returns a
// shutdown function. All routes except the health check require a Bearer JWT.
func StartHTTP(cfg *config.Config, people *repository.PersonRepository) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.HTTP.Address
	if addr == "" {
		addr = ":8080"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := http.Server{
		Addr:    addr,
		Handler: NewHandler(cfg.Auth.JWTSecret, people),
	}

	go func() { _ = srv.Serve(lis) }()

	return func(ctx context.Context) error {
		if err := srv.Shutdown(ctx); err != nil {
			_ = srv.Close()
			return err
		}
		return nil
	}, nil
}
