package handlers

import (
	"log/slog"

	"github.com/BogdanYatsenko/telegram-backup-bot/internal/config"
	"github.com/BogdanYatsenko/telegram-backup-bot/internal/database"
	"github.com/BogdanYatsenko/telegram-backup-bot/internal/media"
)

// HandlerDeps provides dependencies for Telegram handlers.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Store      database.Store
	Downloader *media.Downloader
}
