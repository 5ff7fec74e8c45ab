package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// AttachFunc stages the media attachment of a message, if any. It runs inside
// the archive transaction, after the message row has been inserted and its ID
// allocated. Returning (nil, nil) means the message carries no media.
// Returning an error aborts the whole unit-of-work.
type AttachFunc func(ctx context.Context, msg *Message) (*Media, error)

// Store defines the data access operations of the archive.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// Archive persists one inbound event: it inserts the message row,
	// invokes attach to resolve and stage an optional media row, and commits
	// both in a single transaction. On any failure nothing is committed.
	Archive(ctx context.Context, msg *Message, attach AttachFunc) error

	// Stats returns message, media, and distinct chat counts.
	Stats(ctx context.Context) (*ArchiveStats, error)

	// RunMaintenance performs periodic database maintenance (checkpoint, VACUUM).
	RunMaintenance(ctx context.Context) error
}

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by the given sqlx connection.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const insertMessageQuery = `
    INSERT INTO messages (chat_id, user_id, username, full_name, text, date,
                          message_id, reply_to_message_id, chat_type, is_group)
    VALUES (:chat_id, :user_id, :username, :full_name, :text, :date,
            :message_id, :reply_to_message_id, :chat_type, :is_group);
`

const insertMediaQuery = `
    INSERT INTO media (message_id, chat_id, media_type, file_name, file_path)
    VALUES (:message_id, :chat_id, :media_type, :file_name, :file_path);
`

// Archive implements the single transactional boundary of the archiver. The
// message row is staged first so its ID is available to the attach callback;
// the media download performed by attach therefore happens between the insert
// and the commit, and a failed download discards the message row too.
func (s *sqlxStore) Archive(ctx context.Context, msg *Message, attach AttachFunc) error {
	if msg == nil {
		return fmt.Errorf("cannot archive nil message")
	}
	if msg.ChatID == 0 {
		return fmt.Errorf("message must have a non-zero chat_id")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin archive transaction",
			"chat_id", msg.ChatID, "message_id", msg.MessageID, "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back archive transaction", "error", rollbackErr)
			}
		}
	}()

	result, err := tx.NamedExecContext(ctx, insertMessageQuery, msg)
	if err != nil {
		return fmt.Errorf("failed to stage message (chat %d, message %d): %w", msg.ChatID, msg.MessageID, err)
	}

	// The attach callback may rely on the allocated identity, so failing to
	// retrieve it aborts the unit-of-work rather than proceeding with ID 0.
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to allocate message identity (chat %d, message %d): %w", msg.ChatID, msg.MessageID, err)
	}
	msg.ID = id

	var media *Media
	if attach != nil {
		media, err = attach(ctx, msg)
		if err != nil {
			return fmt.Errorf("failed to stage media (chat %d, message %d): %w", msg.ChatID, msg.MessageID, err)
		}
	}

	if media != nil {
		result, err = tx.NamedExecContext(ctx, insertMediaQuery, media)
		if err != nil {
			return fmt.Errorf("failed to stage media row (chat %d, message %d): %w", msg.ChatID, msg.MessageID, err)
		}
		if id, idErr := result.LastInsertId(); idErr == nil {
			media.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit archive transaction",
			"chat_id", msg.ChatID, "message_id", msg.MessageID, "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "Archived message",
		"chat_id", msg.ChatID, "message_id", msg.MessageID, "row_id", msg.ID, "has_media", media != nil)
	return nil
}

func (s *sqlxStore) Stats(ctx context.Context) (*ArchiveStats, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var stats ArchiveStats
	query := `
        SELECT (SELECT COUNT(*) FROM messages)               AS messages,
               (SELECT COUNT(*) FROM media)                  AS media,
               (SELECT COUNT(DISTINCT chat_id) FROM messages) AS chats;
    `
	if err := s.db.GetContext(ctx, &stats, query); err != nil {
		s.logger.ErrorContext(ctx, "Error collecting archive stats", "error", err)
		return nil, fmt.Errorf("failed to collect archive stats: %w", err)
	}

	return &stats, nil
}

// RunMaintenance checkpoints the WAL and runs VACUUM. VACUUM must execute
// outside a transaction in SQLite.
func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance")

	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		s.logger.WarnContext(ctx, "WAL checkpoint failed", "error", err)
	}

	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed")
	return nil
}
