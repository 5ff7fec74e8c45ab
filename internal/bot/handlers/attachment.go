package handlers

import (
	"github.com/go-telegram/bot/models"
)

// MediaKind is the closed set of attachment kinds the archiver recognizes.
type MediaKind string

const (
	MediaPhoto     MediaKind = "photo"
	MediaVideo     MediaKind = "video"
	MediaDocument  MediaKind = "document"
	MediaVoice     MediaKind = "voice"
	MediaAudio     MediaKind = "audio"
	MediaAnimation MediaKind = "animation"
	MediaSticker   MediaKind = "sticker"
)

// Attachment is the single media item selected from a message.
type Attachment struct {
	Kind   MediaKind
	FileID string
}

// detectAttachment selects at most one attachment from a message, probing in
// fixed priority order: photo, video, document, voice, audio, animation,
// sticker. For photos the highest-resolution variant is the last element of
// the size list Telegram provides. The second return is false when the
// message carries no recognized media.
func detectAttachment(msg *models.Message) (Attachment, bool) {
	if msg == nil {
		return Attachment{}, false
	}

	switch {
	case len(msg.Photo) > 0:
		return Attachment{Kind: MediaPhoto, FileID: msg.Photo[len(msg.Photo)-1].FileID}, true
	case msg.Video != nil:
		return Attachment{Kind: MediaVideo, FileID: msg.Video.FileID}, true
	case msg.Document != nil:
		return Attachment{Kind: MediaDocument, FileID: msg.Document.FileID}, true
	case msg.Voice != nil:
		return Attachment{Kind: MediaVoice, FileID: msg.Voice.FileID}, true
	case msg.Audio != nil:
		return Attachment{Kind: MediaAudio, FileID: msg.Audio.FileID}, true
	case msg.Animation != nil:
		return Attachment{Kind: MediaAnimation, FileID: msg.Animation.FileID}, true
	case msg.Sticker != nil:
		return Attachment{Kind: MediaSticker, FileID: msg.Sticker.FileID}, true
	}

	return Attachment{}, false
}
