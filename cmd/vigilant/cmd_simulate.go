package main

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/vigilant-ai/vigilant/internal/config"
	"github.com/vigilant-ai/vigilant/internal/reconcile"
	"github.com/vigilant-ai/vigilant/internal/store"
	"github.com/vigilant-ai/vigilant/internal/tui"
)

func newSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Open the interactive SMS simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			repo, err := store.NewSQLite(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("initialize store: %w", err)
			}
			defer func() {
				if closeErr := repo.Close(); closeErr != nil {
					slog.Error("Failed to close store", "error", closeErr)
				}
			}()

			rec := reconcile.New(repo, reconcile.NewFixLog(cfg.FixLogPath))

			// Structured logs would tear up the terminal while the TUI owns it.
			slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

			p := tea.NewProgram(tui.NewApp(repo, rec), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run simulator: %w", err)
			}
			return nil
		},
	}
}
