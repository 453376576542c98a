package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vigilant-ai/vigilant/internal/config"
	"github.com/vigilant-ai/vigilant/internal/seed"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a dummy shift export (and optionally a staff roster) for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			rows, _ := cmd.Flags().GetInt("rows")
			randSeed, _ := cmd.Flags().GetInt64("seed")
			roster, _ := cmd.Flags().GetBool("roster")

			if err := seed.Generate(cfg.ExportCSV, rows, randSeed); err != nil {
				return err
			}
			fmt.Printf("Generated %d rows in %s\n", rows, cfg.ExportCSV)

			if roster {
				if err := seed.GenerateRoster(cfg.StaffCSV); err != nil {
					return err
				}
				fmt.Printf("Generated staff roster in %s\n", cfg.StaffCSV)
			}
			return nil
		},
	}
	cmd.Flags().Int("rows", 20, "Number of export rows to generate")
	cmd.Flags().Int64("seed", 1, "Random seed for reproducible output")
	cmd.Flags().Bool("roster", false, "Also generate a matching staff_list.csv")
	return cmd
}
