package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vigilant-ai/vigilant/internal/audit"
	"github.com/vigilant-ai/vigilant/internal/classifier"
	"github.com/vigilant-ai/vigilant/internal/config"
	"github.com/vigilant-ai/vigilant/internal/domain"
)

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Run the classifier over a shift export and write the audit report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateClassifier(); err != nil {
				return err
			}

			prompt, err := os.ReadFile(cfg.AuditPromptPath)
			if err != nil {
				return fmt.Errorf("read audit prompt: %w", err)
			}
			system := strings.TrimSpace(string(prompt))
			if system == "" {
				slog.Warn("audit prompt is empty, the classifier has no grading instructions",
					"path", cfg.AuditPromptPath)
			}

			notes, err := audit.ReadShiftExport(cfg.ExportCSV)
			if err != nil {
				return err
			}

			runner := audit.NewRunner(classifier.NewAnthropic(cfg.AnthropicAPIKey, cfg.Model, system))
			results := runner.Run(cmd.Context(), notes)

			if err := audit.WriteReport(cfg.ReportCSV, results); err != nil {
				return err
			}

			tally := audit.Tally(results)
			fmt.Printf("Audit complete. Report saved to %s\n", cfg.ReportCSV)
			fmt.Printf("  Total rows: %d\n", len(results))
			for _, score := range []domain.AuditScore{
				domain.ScorePass, domain.ScoreFail, domain.ScoreCritical,
				domain.ScoreError, domain.ScoreSkipped,
			} {
				fmt.Printf("  %-9s %d\n", string(score)+":", tally[score])
			}
			return nil
		},
	}
}
