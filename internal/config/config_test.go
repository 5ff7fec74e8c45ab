package config_test

import (
	"testing"

	"github.com/BogdanYatsenko/telegram-backup-bot/internal/config"
)

func TestLoadFailsWithoutToken(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load succeeded without a bot token, want validation error")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "123456:test-token")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Telegram.Token != "123456:test-token" {
		t.Errorf("Token = %q, want value from environment", cfg.Telegram.Token)
	}
	if cfg.Database.Path != "telegram_backup.db" {
		t.Errorf("Database.Path = %q, want default %q", cfg.Database.Path, "telegram_backup.db")
	}
	if cfg.Backup.Dir != "telegram_media_backup" {
		t.Errorf("Backup.Dir = %q, want default %q", cfg.Backup.Dir, "telegram_media_backup")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, "info")
	}
	if task, ok := cfg.Scheduler.Tasks["sql_maintenance"]; !ok {
		t.Error("sql_maintenance task missing from defaults")
	} else if task.Enabled {
		t.Error("sql_maintenance enabled by default, want disabled")
	}
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "123456:test-token")
	t.Setenv("BOT_DATABASE_PATH", "/var/lib/bot/archive.db")
	t.Setenv("BOT_BACKUP_DIR", "/var/lib/bot/media")
	t.Setenv("BOT_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "/var/lib/bot/archive.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Backup.Dir != "/var/lib/bot/media" {
		t.Errorf("Backup.Dir = %q, want env override", cfg.Backup.Dir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want env override", cfg.Log.Level)
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "123456:test-token")
	t.Setenv("BOT_LOG_LEVEL", "verbose")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load accepted invalid log level, want validation error")
	}
}
