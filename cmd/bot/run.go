package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/PoluyanbIch/ZooTotemBot/internal/logging"
	"github.com/PoluyanbIch/ZooTotemBot/internal/service"
	"github.com/PoluyanbIch/ZooTotemBot/internal/telegram"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd)
		},
	}
}

func runBot(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	engine, err := loadEngine(cfg, logger)
	if err != nil {
		return err
	}
	if err := engine.CheckScoring(); err != nil {
		return err
	}

	printf(cmd.OutOrStdout(), "%s\n", figure.NewFigure("ZooTotemBot", "", true).String())
	logger.Info("catalog loaded",
		"questions", engine.Questions(), "categories", engine.Table().Len(),
		"catalog", source(cfg.CatalogPath), "table", source(cfg.CategoriesPath))

	bot, err := telegram.NewBot(cfg.TelegramToken, engine, telegram.Options{
		AssetsDir:   cfg.AssetsDir,
		AnswerDelay: cfg.AnswerDelay,
		GuardianURL: cfg.GuardianURL,
		Debug:       cfg.Debug,
		Board:       service.NewMemoryResultBoard(),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("bot is starting")
	if err := bot.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("bot stopped: %w", err)
	}
	logger.Info("bot stopped")
	return nil
}
