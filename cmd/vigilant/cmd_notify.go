package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vigilant-ai/vigilant/internal/audit"
	"github.com/vigilant-ai/vigilant/internal/channel"
	"github.com/vigilant-ai/vigilant/internal/config"
	"github.com/vigilant-ai/vigilant/internal/dispatch"
	"github.com/vigilant-ai/vigilant/internal/domain"
	"github.com/vigilant-ai/vigilant/internal/phonebook"
	"github.com/vigilant-ai/vigilant/internal/store"
)

func newNotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Record pending fixes for flagged audit results and send coaching messages",
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

			book, err := phonebook.Load(cfg.StaffCSV)
			if err != nil {
				return err
			}

			results, err := audit.ReadReport(cfg.ReportCSV)
			if err != nil {
				return err
			}

			items := make([]dispatch.Item, 0, len(results))
			for _, res := range results {
				items = append(items, dispatch.Item{
					Note: domain.NoteRef{
						StaffName:   res.Note.StaffName,
						ClientLabel: res.Note.ClientLabel,
						ShiftID:     res.Note.ShiftID,
					},
					Verdict: res.Verdict,
				})
			}

			var ch channel.Channel
			if cfg.SimulatorMode {
				slog.Info("Simulator mode on, messages go to the local log only")
				ch = channel.NewSimulator(repo)
			} else {
				if err := cfg.ValidateTwilio(); err != nil {
					return err
				}
				ch = channel.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, repo)
			}

			opts := dispatch.Options{Mode: dispatch.ModePerRecipient}
			if cfg.CheapMode {
				opts.Mode = dispatch.ModeAggregate
			}
			if cfg.CheapMode || cfg.SafetyMode {
				if cfg.TestNumber == "" {
					return fmt.Errorf("TEST_PHONE_NUMBER must be set when safety or cheap mode is on")
				}
				opts.Redirect = cfg.TestNumber
				slog.Info("Deliveries redirected to test number", "destination", cfg.TestNumber)
			}

			d, err := dispatch.New(repo, book, ch, opts)
			if err != nil {
				return err
			}

			summary, err := d.Run(cmd.Context(), items)
			if err != nil {
				return err
			}

			fmt.Printf("Sent %d message(s).\n", summary.Sent)
			fmt.Printf("Flagged %d note(s) total.\n", summary.Flagged)
			fmt.Printf("State saved: %d pending fix(es).\n", summary.Pending)
			fmt.Printf("Skipped %d compliant/empty note(s) (%d with no roster number).\n",
				summary.Skipped, summary.SkippedNoPhone)
			if summary.Errors > 0 {
				fmt.Printf("Errors: %d (check logs).\n", summary.Errors)
			}
			return nil
		},
	}
}
