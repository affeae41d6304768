package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yourusername/sku-target-cleaner/internal/delivery/telegram"
	"github.com/yourusername/sku-target-cleaner/internal/infrastructure/parser"
	"github.com/yourusername/sku-target-cleaner/internal/infrastructure/writer"
	"github.com/yourusername/sku-target-cleaner/internal/usecase"
)

func newBotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot: upload both sheets, get the cleaned CSV back",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireTelegram(); err != nil {
				return err
			}

			defaults, err := defaultOptions(a.cfg, time.Now())
			if err != nil {
				return err
			}
			// chats get the current month when they first write
			defaults.Month = ""

			runs := a.openRuns()
			defer runs.Close()

			cleaner := usecase.NewCleanerUseCase(parser.NewSheetReader(), writer.NewCSVWriter(writer.HeaderPlain), runs)
			handler, err := telegram.NewBotHandler(a.cfg.TelegramToken, cleaner, defaults, a.cfg.PreviewRows, a.cfg.MaxUploadMB)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
