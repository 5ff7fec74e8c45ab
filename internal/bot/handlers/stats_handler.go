package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type statsHandler struct {
	deps HandlerDeps
}

// NewStatsHandler creates the /stats command handler, which reports how many
// messages, media files, and chats the archive currently holds.
func NewStatsHandler(deps HandlerDeps) bot.HandlerFunc {
	return statsHandler{deps}.Handle
}

func (h statsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "stats")

	msg := update.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID

	stats, err := h.deps.Store.Stats(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to collect archive stats", "error", err, "chat_id", chatID)
		return
	}

	text := fmt.Sprintf("Archive: %d messages, %d media files, %d chats.",
		stats.Messages, stats.Media, stats.Chats)
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send stats message", "error", err, "chat_id", chatID)
	}
}
