// Package main contains the entrypoint for the Telegram backup bot.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbot "github.com/go-telegram/bot"

	"github.com/BogdanYatsenko/telegram-backup-bot/internal/bot"
	"github.com/BogdanYatsenko/telegram-backup-bot/internal/bot/handlers"
	"github.com/BogdanYatsenko/telegram-backup-bot/internal/bot/tasks"
	"github.com/BogdanYatsenko/telegram-backup-bot/internal/config"
	"github.com/BogdanYatsenko/telegram-backup-bot/internal/database"
	"github.com/BogdanYatsenko/telegram-backup-bot/internal/logger"
	"github.com/BogdanYatsenko/telegram-backup-bot/internal/media"
	"github.com/BogdanYatsenko/telegram-backup-bot/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires all components (config, logger, database, downloader, bot,
// scheduler), starts the orchestrator, and returns the process exit code.
func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	downloader, err := media.NewDownloader(cfg.Telegram.Token, cfg.Backup.Dir, log)
	if err != nil {
		log.Error("Failed to initialize media downloader", "dir", cfg.Backup.Dir, "error", err)
		return 1
	}
	log.Info("Media backup directory ready", "dir", downloader.Dir())

	deps := handlers.HandlerDeps{
		Logger:     log,
		Config:     cfg,
		Store:      store,
		Downloader: downloader,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewArchiveHandler(deps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(deps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{Logger: log, Store: store}))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, tg, sched)

	log.Info("Starting backup bot")
	runErr := app.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		return 1
	}

	log.Info("Bot stopped gracefully")
	return 0
}
