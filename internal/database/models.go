package database

import (
	"database/sql"
	"time"
)

// Message is one archived chat event. Rows are never updated or deleted;
// the archive is append-only.
type Message struct {
	ID        int64          `db:"id"`
	ChatID    int64          `db:"chat_id"`
	UserID    sql.NullInt64  `db:"user_id"`
	Username  sql.NullString `db:"username"`
	FullName  string         `db:"full_name"`
	Text      sql.NullString `db:"text"`
	Date      time.Time      `db:"date"`

	// MessageID is unique only within a chat, never globally.
	MessageID        int           `db:"message_id"`
	ReplyToMessageID sql.NullInt64 `db:"reply_to_message_id"`
	ChatType         string        `db:"chat_type"`
	IsGroup          bool          `db:"is_group"`
}

// Media is the downloaded attachment of a Message, at most one per message.
// ChatID and MessageID are duplicated from the owning message for independent
// lookup; there is no enforced foreign key.
type Media struct {
	ID        int64  `db:"id"`
	MessageID int    `db:"message_id"`
	ChatID    int64  `db:"chat_id"`
	MediaType string `db:"media_type"`
	FileName  string `db:"file_name"`
	FilePath  string `db:"file_path"`
}

// ArchiveStats summarizes the archive for the /stats command.
type ArchiveStats struct {
	Messages int64 `db:"messages"`
	Media    int64 `db:"media"`
	Chats    int64 `db:"chats"`
}
