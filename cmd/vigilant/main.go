// Vigilant — NDIS progress-note compliance auditing with SMS remediation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "vigilant",
		Short: "Audit care-worker progress notes and drive SMS remediation",
		Long: `vigilant audits free-text progress notes against compliance rules and,
for flagged notes, drives a remediation conversation with the authoring
staff member over SMS until a corrected note is received.`,
	}

	rootCmd.AddCommand(
		newAuditCmd(),
		newNotifyCmd(),
		newServeCmd(),
		newSimulateCmd(),
		newConversationsCmd(),
		newSeedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
