package handlers

import (
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestDetectAttachment(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		msg      *models.Message
		wantKind MediaKind
		wantID   string
		wantOK   bool
	}{
		{
			name:   "nil message",
			msg:    nil,
			wantOK: false,
		},
		{
			name:   "text only",
			msg:    &models.Message{Text: "hello"},
			wantOK: false,
		},
		{
			name: "photo picks last size",
			msg: &models.Message{
				Photo: []models.PhotoSize{
					{FileID: "small"},
					{FileID: "medium"},
					{FileID: "large"},
				},
			},
			wantKind: MediaPhoto,
			wantID:   "large",
			wantOK:   true,
		},
		{
			name: "photo wins over document",
			msg: &models.Message{
				Photo:    []models.PhotoSize{{FileID: "photo1"}},
				Document: &models.Document{FileID: "doc1"},
			},
			wantKind: MediaPhoto,
			wantID:   "photo1",
			wantOK:   true,
		},
		{
			name: "video wins over voice",
			msg: &models.Message{
				Video: &models.Video{FileID: "vid1"},
				Voice: &models.Voice{FileID: "voice1"},
			},
			wantKind: MediaVideo,
			wantID:   "vid1",
			wantOK:   true,
		},
		{
			name:     "document",
			msg:      &models.Message{Document: &models.Document{FileID: "doc2"}},
			wantKind: MediaDocument,
			wantID:   "doc2",
			wantOK:   true,
		},
		{
			name:     "voice",
			msg:      &models.Message{Voice: &models.Voice{FileID: "v"}},
			wantKind: MediaVoice,
			wantID:   "v",
			wantOK:   true,
		},
		{
			name:     "audio",
			msg:      &models.Message{Audio: &models.Audio{FileID: "a"}},
			wantKind: MediaAudio,
			wantID:   "a",
			wantOK:   true,
		},
		{
			name:     "animation",
			msg:      &models.Message{Animation: &models.Animation{FileID: "gif"}},
			wantKind: MediaAnimation,
			wantID:   "gif",
			wantOK:   true,
		},
		{
			name:     "sticker",
			msg:      &models.Message{Sticker: &models.Sticker{FileID: "s"}},
			wantKind: MediaSticker,
			wantID:   "s",
			wantOK:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := detectAttachment(tc.msg)
			if ok != tc.wantOK {
				t.Fatalf("detectAttachment() ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if got.Kind != tc.wantKind {
				t.Errorf("detectAttachment() kind = %q, want %q", got.Kind, tc.wantKind)
			}
			if got.FileID != tc.wantID {
				t.Errorf("detectAttachment() file id = %q, want %q", got.FileID, tc.wantID)
			}
		})
	}
}
