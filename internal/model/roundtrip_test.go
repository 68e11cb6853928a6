package model_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/status"
	"github.com/google/uuid"
)

// Stored records must survive serialization unchanged: what a repository
// writes and immediately re-reads has to compare field-for-field equal.
// UTC().Round(0) keeps the timestamps comparable (no monotonic clock part).
func TestJSONRoundTrip(t *testing.T) {
	now := time.Now().UTC().Round(0)
	readAt := now.Add(-time.Minute)
	threadID := uuid.New()
	postingID := uuid.New()

	cases := []struct {
		name    string
		in, out any
	}{
		{
			name: "application",
			in: &model.Application{
				ID:             uuid.New(),
				CandidateEmail: "siswa@example.com",
				PostingID:      postingID,
				CompanyEmail:   "hrd@majumapan.co.id",
				Status:         status.Shortlisted,
				CreatedAt:      now.Add(-time.Hour),
				UpdatedAt:      now,
			},
			out: &model.Application{},
		},
		{
			name: "chat thread",
			in: &model.ChatThread{
				ID:              threadID,
				PostingID:       postingID,
				CandidateEmail:  "siswa@example.com",
				CompanyEmail:    "hrd@majumapan.co.id",
				InternshipTitle: "Backend Developer Intern",
				Enabled:         true,
				CreatedAt:       now.Add(-time.Hour),
				UpdatedAt:       now,
			},
			out: &model.ChatThread{},
		},
		{
			name: "chat message",
			in: &model.ChatMessage{
				ID:          uuid.New(),
				ThreadID:    threadID,
				SenderEmail: "hrd@majumapan.co.id",
				SenderRole:  model.RoleCompany,
				Text:        "Selamat siang, kapan bisa mulai?",
				Type:        model.MessageTypeText,
				CreatedAt:   now,
			},
			out: &model.ChatMessage{},
		},
		{
			name: "notification with optional fields set",
			in: &model.Notification{
				ID:             uuid.New(),
				RecipientRole:  model.RoleCandidate,
				RecipientEmail: "siswa@example.com",
				Type:           model.NotificationMatch,
				Title:          "Kamu diterima!",
				Message:        "Percakapan dengan perusahaan sudah dibuka.",
				ThreadID:       &threadID,
				PostingID:      &postingID,
				ActionURL:      "/chats/" + threadID.String(),
				ReadAt:         &readAt,
				CreatedAt:      now,
			},
			out: &model.Notification{},
		},
		{
			name: "notification unread, no references",
			in: &model.Notification{
				ID:             uuid.New(),
				RecipientRole:  model.RoleCompany,
				RecipientEmail: "hrd@majumapan.co.id",
				Type:           model.NotificationSystem,
				Title:          "Info",
				CreatedAt:      now,
			},
			out: &model.Notification{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			raw, err := json.Marshal(c.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if err := json.Unmarshal(raw, c.out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(c.in, c.out) {
				t.Errorf("round trip changed the record:\n wrote %+v\n read  %+v", c.in, c.out)
			}
		})
	}
}
