// Command reportsd runs the HTTP adapter: POST /reports, GET /reports,
// GET /reports/{id}, POST /waitlist, GET /admin/waitlist, and the
// marketing site.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/truespec/truespec/internal/httpapi"
	"github.com/truespec/truespec/internal/logging"
	"github.com/truespec/truespec/internal/reportstore"
	"github.com/truespec/truespec/internal/site"
)

func main() {
	logger := logging.NewSlogAdapter(slog.Default())

	cfg := httpapi.LoadConfig()
	store := reportstore.NewInMemoryStore()
	api := httpapi.New(cfg, store, logger)

	mux := http.NewServeMux()
	mux.Handle("/", site.Handler())
	api.Register(mux)

	addr := os.Getenv("TRUESPEC_REPORTS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err.Error())
		}
	}()

	logger.Info("reportsd listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}
