package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-telegram/bot"
)

const (
	downloadTimeout = 30 * time.Second

	// Telegram bots cannot download files larger than 20 MB.
	maxDownloadSize = 20 * 1024 * 1024
)

// Downloader fetches Telegram files into the backup directory under
// deterministic names.
type Downloader struct {
	token  string
	dir    string
	client *http.Client
	logger *slog.Logger
}

// NewDownloader creates a Downloader writing into dir, creating the directory
// if it does not exist.
func NewDownloader(token, dir string, logger *slog.Logger) (*Downloader, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory %s: %w", dir, err)
	}

	return &Downloader{
		token:  token,
		dir:    dir,
		client: http.DefaultClient,
		logger: logger.With("component", "downloader"),
	}, nil
}

// Dir returns the backup directory path.
func (d *Downloader) Dir() string {
	return d.dir
}

// Fetch resolves fileID to a remote file handle, computes its destination
// name from the chat/message identifiers and the handle's unique token, and
// downloads the bytes into the backup directory. It returns the file name and
// the resolved on-disk path.
func (d *Downloader) Fetch(ctx context.Context, b *bot.Bot, chatID int64, messageID int, fileID, fallbackExt string) (string, string, error) {
	if fileID == "" {
		return "", "", fmt.Errorf("empty fileID provided for download")
	}
	if ctx.Err() != nil {
		return "", "", fmt.Errorf("context cancelled before file download: %w", ctx.Err())
	}

	downloadCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	fileObj, err := b.GetFile(downloadCtx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return "", "", fmt.Errorf("failed to get file info from Telegram: %w", err)
	}

	fileName := Filename(chatID, messageID, fileObj.FilePath, fileObj.FileUniqueID, fallbackExt)
	destPath := filepath.Join(d.dir, fileName)

	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", d.token, fileObj.FilePath)
	req, err := http.NewRequestWithContext(downloadCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			d.logger.WarnContext(ctx, "Error closing download response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", "", fmt.Errorf("unexpected status code %d downloading %s: %s", resp.StatusCode, fileID, string(body))
	}

	out, err := os.Create(destPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create %s: %w", destPath, err)
	}

	written, err := io.Copy(out, io.LimitReader(resp.Body, maxDownloadSize))
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		// Drop the partial file; the enclosing unit-of-work aborts anyway.
		if rmErr := os.Remove(destPath); rmErr != nil {
			d.logger.WarnContext(ctx, "Failed to remove partial download", "path", destPath, "error", rmErr)
		}
		return "", "", fmt.Errorf("failed to write %s: %w", destPath, err)
	}

	d.logger.DebugContext(ctx, "Downloaded media file",
		"file_name", fileName, "bytes", written, "chat_id", chatID, "message_id", messageID)
	return fileName, destPath, nil
}
