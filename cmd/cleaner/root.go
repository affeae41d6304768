package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/yourusername/sku-target-cleaner/config"
	"github.com/yourusername/sku-target-cleaner/internal/domain/repository"
	"github.com/yourusername/sku-target-cleaner/internal/infrastructure/storage"
)

type app struct {
	cfg       *config.Config
	noHistory bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "cleaner",
		Short:        "Turn per-store SKU target sheets into one row per SKU, store and month",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&a.noHistory, "no-history", false, "do not record runs in the history database")

	root.AddCommand(newRunCmd(a), newHistoryCmd(a), newBotCmd(a))
	return root
}

// openRuns falls back to in-memory history when the database is unusable
func (a *app) openRuns() repository.RunRepository {
	if a.noHistory {
		return storage.NewMemoryRunRepository()
	}
	runs, err := storage.NewSQLiteRunRepository(a.cfg.RunsDBPath)
	if err != nil {
		log.Printf("⚠️ Run history disabled: %v", err)
		return storage.NewMemoryRunRepository()
	}
	return runs
}
