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

	"github.com/spf13/cobra"

	"github.com/kurobon/gitviz/internal/config"
	"github.com/kurobon/gitviz/internal/git"
	"github.com/kurobon/gitviz/internal/server"
)

var addrFlag string

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Global
	if addrFlag != "" {
		cfg.Addr = addrFlag
	}

	sessionManager := git.NewSessionManager(cfg.SessionOptions())
	srv := server.NewServer(sessionManager, cfg)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s (default branch %s)", cfg.Addr, cfg.DefaultBranch)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
