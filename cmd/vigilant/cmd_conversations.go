package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vigilant-ai/vigilant/internal/config"
	"github.com/vigilant-ai/vigilant/internal/conversation"
	"github.com/vigilant-ai/vigilant/internal/domain"
	"github.com/vigilant-ai/vigilant/internal/store"
)

func newConversationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversations",
		Short: "Print the conversation read model",
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

			convs, err := conversation.Load(cmd.Context(), repo)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(convs)
			}

			if len(convs) == 0 {
				fmt.Println("No conversations yet.")
				return nil
			}
			for _, conv := range convs {
				status := conv.Status()
				if status == "" {
					status = "-"
				}
				fmt.Printf("%s  %s  [%s]\n", conv.StaffName, conv.Address, status)
				for _, msg := range conv.Messages {
					label := "vigilant"
					if msg.Direction == domain.DirectionInbound {
						label = conv.StaffName
					}
					fmt.Printf("  %s  %s: %s\n", msg.Timestamp.Format("2006-01-02 15:04:05"), label, msg.Body)
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
