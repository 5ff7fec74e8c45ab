package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminOnly creates a middleware that restricts a handler to the configured
// admin user. Non-admin invocations are logged and dropped without a reply so
// the bot stays silent for everyone else. An unset admin_id disables the
// command entirely.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				return
			}

			userID := update.Message.From.ID
			adminID := deps.Config.Telegram.AdminID

			if adminID == 0 || userID != adminID {
				log := deps.Logger.With("middleware", "admin_only")
				log.WarnContext(ctx, "Unauthorized command attempt",
					"user_id", userID, "chat_id", update.Message.Chat.ID)
				return
			}

			next(ctx, b, update)
		}
	}
}
