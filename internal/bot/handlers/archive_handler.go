// Package handlers contains the Telegram handlers of the backup bot: the
// archive pipeline for regular messages, the operator commands, and their
// registration plumbing.
package handlers

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/BogdanYatsenko/telegram-backup-bot/internal/database"
)

type archiveHandler struct {
	deps HandlerDeps
}

// NewArchiveHandler creates the default handler that archives every
// non-command message: metadata goes to the store, an attached media item (at
// most one per message) is downloaded to the backup directory. Failures are
// logged and swallowed here so a bad event never stops the delivery loop; the
// event is simply absent from the archive.
func NewArchiveHandler(deps HandlerDeps) bot.HandlerFunc {
	return archiveHandler{deps}.Handle
}

func (h archiveHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "archive")

	msg := effectiveMessage(update)
	if msg == nil {
		return
	}
	if isCommand(msg) {
		log.DebugContext(ctx, "Skipping command message", "chat_id", msg.Chat.ID, "message_id", msg.ID)
		return
	}

	record := extractMessage(msg)

	err := h.deps.Store.Archive(ctx, record, func(ctx context.Context, staged *database.Message) (*database.Media, error) {
		attachment, ok := detectAttachment(msg)
		if !ok {
			return nil, nil
		}

		fileName, filePath, err := h.deps.Downloader.Fetch(ctx, b, staged.ChatID, staged.MessageID, attachment.FileID, "")
		if err != nil {
			return nil, err
		}

		return &database.Media{
			MessageID: staged.MessageID,
			ChatID:    staged.ChatID,
			MediaType: string(attachment.Kind),
			FileName:  fileName,
			FilePath:  filePath,
		}, nil
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to archive message",
			"chat_id", msg.Chat.ID, "message_id", msg.ID, "error", err)
	}
}

// effectiveMessage selects the message payload of an update. Regular
// messages, edited messages, channel posts, and edited channel posts all
// qualify for archiving; anything else carries no message payload.
func effectiveMessage(update *models.Update) *models.Message {
	switch {
	case update.Message != nil:
		return update.Message
	case update.EditedMessage != nil:
		return update.EditedMessage
	case update.ChannelPost != nil:
		return update.ChannelPost
	case update.EditedChannelPost != nil:
		return update.EditedChannelPost
	}
	return nil
}

// extractMessage maps a Telegram message onto the archive record.
func extractMessage(msg *models.Message) *database.Message {
	chatType := string(msg.Chat.Type)
	record := &database.Message{
		ChatID:    msg.Chat.ID,
		Date:      time.Unix(int64(msg.Date), 0).UTC(),
		MessageID: msg.ID,
		ChatType:  chatType,
		IsGroup:   chatType == "group" || chatType == "supergroup",
	}

	if msg.From != nil {
		record.UserID = sql.NullInt64{Int64: msg.From.ID, Valid: true}
		if msg.From.Username != "" {
			record.Username = sql.NullString{String: msg.From.Username, Valid: true}
		}
		record.FullName = joinFullName(msg.From.FirstName, msg.From.LastName)
	}

	// Captions of media posts stand in for message text.
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text != "" {
		record.Text = sql.NullString{String: text, Valid: true}
	}

	if msg.ReplyToMessage != nil {
		record.ReplyToMessageID = sql.NullInt64{Int64: int64(msg.ReplyToMessage.ID), Valid: true}
	}

	return record
}

// joinFullName joins the non-empty parts of a first/last name pair with a
// single space, first name first. Both absent yields the empty string.
func joinFullName(first, last string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{first, last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// isCommand reports whether the message starts with a bot command entity.
func isCommand(msg *models.Message) bool {
	for _, e := range msg.Entities {
		if e.Type == models.MessageEntityTypeBotCommand && e.Offset == 0 {
			return true
		}
	}
	return false
}
