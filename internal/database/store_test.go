package database_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/BogdanYatsenko/telegram-backup-bot/internal/database"

	_ "modernc.org/sqlite"
)

func openTestStore(t *testing.T) (database.Store, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "archive_test.db")
	db, err := database.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB(%q) failed: %v", dbPath, err)
	}

	store := database.NewStore(db, nil)
	return store, func() { database.CloseDB(db) }
}

func testMessage(chatID int64, messageID int) *database.Message {
	return &database.Message{
		ChatID:    chatID,
		UserID:    sql.NullInt64{Int64: 101, Valid: true},
		Username:  sql.NullString{String: "ada", Valid: true},
		FullName:  "Ada Lovelace",
		Text:      sql.NullString{String: "hello", Valid: true},
		Date:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		MessageID: messageID,
		ChatType:  "supergroup",
		IsGroup:   true,
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "archive_test.db")
	db, err := database.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	defer database.CloseDB(db)

	// NewDB already ran the migrations once; a second run must be a no-op.
	if err := database.ApplyMigrations(db.DB); err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}

	var count int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('messages', 'media')`
	if err := db.Get(&count, query); err != nil {
		t.Fatalf("failed to inspect schema: %v", err)
	}
	if count != 2 {
		t.Errorf("archive table count = %d, want 2", count)
	}
}

func TestArchiveMessageWithoutMedia(t *testing.T) {
	t.Parallel()

	store, closeStore := openTestStore(t)
	defer closeStore()
	ctx := context.Background()

	msg := testMessage(-100123, 42)
	attachCalled := false
	err := store.Archive(ctx, msg, func(ctx context.Context, staged *database.Message) (*database.Media, error) {
		attachCalled = true
		if staged.ID == 0 {
			t.Error("staged message has no allocated ID inside attach callback")
		}
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if !attachCalled {
		t.Error("attach callback was not invoked")
	}
	if msg.ID == 0 {
		t.Error("message ID was not populated after Archive")
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Messages != 1 || stats.Media != 0 || stats.Chats != 1 {
		t.Errorf("stats = %+v, want 1 message, 0 media, 1 chat", stats)
	}
}

func TestArchiveMessageWithMedia(t *testing.T) {
	t.Parallel()

	store, closeStore := openTestStore(t)
	defer closeStore()
	ctx := context.Background()

	msg := testMessage(-100123, 7)
	err := store.Archive(ctx, msg, func(ctx context.Context, staged *database.Message) (*database.Media, error) {
		return &database.Media{
			MessageID: staged.MessageID,
			ChatID:    staged.ChatID,
			MediaType: "photo",
			FileName:  "-100123_7_ABC.jpg",
			FilePath:  "/backups/-100123_7_ABC.jpg",
		}, nil
	})
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Messages != 1 || stats.Media != 1 {
		t.Errorf("stats = %+v, want 1 message and 1 media row", stats)
	}
}

func TestArchiveRollsBackOnAttachFailure(t *testing.T) {
	t.Parallel()

	store, closeStore := openTestStore(t)
	defer closeStore()
	ctx := context.Background()

	transferErr := errors.New("simulated transfer failure")
	msg := testMessage(-100123, 8)
	err := store.Archive(ctx, msg, func(ctx context.Context, staged *database.Message) (*database.Media, error) {
		return nil, transferErr
	})
	if err == nil {
		t.Fatal("Archive succeeded, want failure from attach callback")
	}
	if !errors.Is(err, transferErr) {
		t.Errorf("Archive error = %v, want wrapped %v", err, transferErr)
	}

	// Neither the message nor a media row may survive the abort.
	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Messages != 0 || stats.Media != 0 {
		t.Errorf("stats after rollback = %+v, want empty archive", stats)
	}
}

func TestStatsCountsDistinctChats(t *testing.T) {
	t.Parallel()

	store, closeStore := openTestStore(t)
	defer closeStore()
	ctx := context.Background()

	for i, chatID := range []int64{-1, -1, -2} {
		if err := store.Archive(ctx, testMessage(chatID, i+1), nil); err != nil {
			t.Fatalf("Archive failed: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Messages != 3 || stats.Chats != 2 {
		t.Errorf("stats = %+v, want 3 messages across 2 chats", stats)
	}
}

func TestRunMaintenance(t *testing.T) {
	t.Parallel()

	store, closeStore := openTestStore(t)
	defer closeStore()

	if err := store.RunMaintenance(context.Background()); err != nil {
		t.Fatalf("RunMaintenance failed: %v", err)
	}
}
