// Package media computes deterministic file names for downloaded attachments
// and performs the byte transfer from Telegram's file endpoint to disk.
package media

import (
	"fmt"
	"strings"
)

// Filename builds a deterministic name for a media asset:
// "{chatID}_{messageID}_{uniqueID}" plus an optional lowercase extension.
//
// The extension comes from the remote path's suffix after the last "." when
// present, else from fallbackExt (leading dots stripped), else nothing.
// Uniqueness across all time rests on uniqueID, which Telegram guarantees
// unique per physical file; messageID alone is only unique within a chat.
func Filename(chatID int64, messageID int, remotePath, uniqueID, fallbackExt string) string {
	ext := ""
	if idx := strings.LastIndex(remotePath, "."); idx != -1 {
		ext = strings.ToLower(remotePath[idx+1:])
	}
	if ext == "" && fallbackExt != "" {
		ext = strings.ToLower(strings.TrimLeft(fallbackExt, "."))
	}

	suffix := ""
	if ext != "" {
		suffix = "." + ext
	}
	return fmt.Sprintf("%d_%d_%s%s", chatID, messageID, uniqueID, suffix)
}
