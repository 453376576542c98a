package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/vigilant-ai/vigilant/internal/api"
	"github.com/vigilant-ai/vigilant/internal/config"
	"github.com/vigilant-ai/vigilant/internal/reconcile"
	"github.com/vigilant-ai/vigilant/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the inbound SMS webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			slog.Info("Starting webhook server", "port", cfg.Port)

			repo, err := store.NewSQLite(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("initialize store: %w", err)
			}
			defer func() {
				if closeErr := repo.Close(); closeErr != nil {
					slog.Error("Failed to close store", "error", closeErr)
				}
			}()

			if err := repo.Ping(context.Background()); err != nil {
				return fmt.Errorf("store health check: %w", err)
			}

			pending, err := repo.AllRemediations(context.Background())
			if err != nil {
				return fmt.Errorf("load pending fixes: %w", err)
			}
			slog.Info("Pending fixes loaded", "count", len(pending))
			for address, rec := range pending {
				slog.Info("pending", "staff", rec.StaffName, "address", address, "shift_id", rec.ShiftID, "status", rec.Status)
			}

			rec := reconcile.New(repo, reconcile.NewFixLog(cfg.FixLogPath))
			handler := api.NewHandler(repo, rec)

			r := chi.NewRouter()
			r.Use(chiMiddleware.RequestID)
			r.Use(chiMiddleware.RealIP)
			r.Use(chiMiddleware.Logger)
			r.Use(chiMiddleware.Recoverer)
			r.Use(chiMiddleware.Heartbeat("/health"))
			handler.RegisterRoutes(r)

			srv := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      r,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				slog.Info("Server listening", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("Server failed", "error", err)
					os.Exit(1)
				}
			}()

			<-ctx.Done()
			stop()

			slog.Info("Shutting down gracefully...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			slog.Info("Server stopped successfully")
			return nil
		},
	}
}
