package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/pkg/apperror"
	"github.com/google/uuid"
)

type chatFixture struct {
	svc    ChatService
	repo   *fakeChatRepo
	notifs *fakeNotificationRepo
}

func newChatFixture(window time.Duration) *chatFixture {
	repo := &fakeChatRepo{}
	notifs := &fakeNotificationRepo{}
	notificationSvc := NewNotificationService(notifs, nil, window)
	return &chatFixture{
		svc:    NewChatService(repo, notificationSvc, nil),
		repo:   repo,
		notifs: notifs,
	}
}

func (f *chatFixture) enabledThread(t *testing.T) *model.ChatThread {
	t.Helper()
	thread, err := f.svc.GetOrCreateThread(context.Background(), uuid.New(), testCandidate, testCompany, "Backend Developer Intern")
	if err != nil {
		t.Fatalf("GetOrCreateThread: %v", err)
	}
	thread, err = f.svc.EnableThread(context.Background(), thread.ID)
	if err != nil {
		t.Fatalf("EnableThread: %v", err)
	}
	return thread
}

func TestGetOrCreateThread_TripleIsUnique(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	postingID := uuid.New()

	first, err := f.svc.GetOrCreateThread(context.Background(), postingID, testCandidate, testCompany, "Backend Developer Intern")
	if err != nil {
		t.Fatalf("first GetOrCreateThread: %v", err)
	}
	if first.Enabled {
		t.Error("a fresh thread must start disabled")
	}

	second, err := f.svc.GetOrCreateThread(context.Background(), postingID, testCandidate, testCompany, "Backend Intern (updated)")
	if err != nil {
		t.Fatalf("second GetOrCreateThread: %v", err)
	}
	if len(f.repo.threads) != 1 {
		t.Fatalf("threads = %d, want exactly 1 per triple", len(f.repo.threads))
	}
	if second.ID != first.ID {
		t.Errorf("second call returned a different thread: %s vs %s", second.ID, first.ID)
	}
	if second.InternshipTitle != "Backend Intern (updated)" {
		t.Errorf("title cache not refreshed: %q", second.InternshipTitle)
	}
}

func TestEnableThread_Idempotent(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	thread := f.enabledThread(t)

	again, err := f.svc.EnableThread(context.Background(), thread.ID)
	if err != nil {
		t.Fatalf("repeated EnableThread: %v", err)
	}
	if !again.Enabled {
		t.Error("thread must stay enabled")
	}
}

func TestEnableThread_Unknown(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	if _, err := f.svc.EnableThread(context.Background(), uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSendMessage_DisabledThread(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	thread, err := f.svc.GetOrCreateThread(context.Background(), uuid.New(), testCandidate, testCompany, "Backend Developer Intern")
	if err != nil {
		t.Fatalf("GetOrCreateThread: %v", err)
	}

	_, err = f.svc.SendMessage(context.Background(), thread.ID, testCandidate, model.RoleCandidate, "halo", "")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden on disabled thread", err)
	}
	if len(f.repo.messages) != 0 {
		t.Errorf("messages = %d, want 0 (nothing appended)", len(f.repo.messages))
	}
}

func TestSendMessage_NonParticipant(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	thread := f.enabledThread(t)

	_, err := f.svc.SendMessage(context.Background(), thread.ID, "penyusup@example.com", model.RoleCandidate, "halo", "")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden for non-participant", err)
	}
	if len(f.repo.messages) != 0 {
		t.Errorf("messages = %d, want 0", len(f.repo.messages))
	}
}

func TestSendMessage_UnknownThread(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	if _, err := f.svc.SendMessage(context.Background(), uuid.New(), testCandidate, model.RoleCandidate, "halo", ""); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSendMessage_AppendsAndBumpsThread(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	thread := f.enabledThread(t)

	msg, err := f.svc.SendMessage(context.Background(), thread.ID, testCandidate, model.RoleCandidate, "Selamat siang, kapan mulai?", "")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if msg.Type != model.MessageTypeText {
		t.Errorf("Type = %q, want default %q", msg.Type, model.MessageTypeText)
	}

	stored, err := f.repo.GetThread(thread.ID)
	if err != nil {
		t.Fatalf("GetThread: %v", err)
	}
	if !stored.UpdatedAt.Equal(msg.CreatedAt) {
		t.Errorf("thread UpdatedAt = %v, want message CreatedAt %v", stored.UpdatedAt, msg.CreatedAt)
	}

	// The other participant gets the message notification.
	if got := f.notifs.countFor(model.RoleCompany, testCompany); got != 1 {
		t.Errorf("company notifications = %d, want 1", got)
	}
	if got := f.notifs.countFor(model.RoleCandidate, testCandidate); got != 0 {
		t.Errorf("sender notifications = %d, want 0", got)
	}
}

func TestSendMessage_SanitizesMarkup(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	thread := f.enabledThread(t)

	msg, err := f.svc.SendMessage(context.Background(), thread.ID, testCandidate, model.RoleCandidate,
		`halo <script>alert("x")</script>`, "")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if msg.Text != "halo " {
		t.Errorf("Text = %q, want script tag stripped", msg.Text)
	}
}

func TestSendMessage_InterviewType(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	thread := f.enabledThread(t)

	msg, err := f.svc.SendMessage(context.Background(), thread.ID, testCompany, model.RoleCompany,
		`{"date":"2025-02-10","time":"10:00"}`, model.MessageTypeInterview)
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if msg.Type != model.MessageTypeInterview {
		t.Errorf("Type = %q, want %q", msg.Type, model.MessageTypeInterview)
	}
}

func TestSendMessage_BurstProducesOneNotification(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	thread := f.enabledThread(t)

	for i := 0; i < 5; i++ {
		if _, err := f.svc.SendMessage(context.Background(), thread.ID, testCandidate, model.RoleCandidate, "ping", ""); err != nil {
			t.Fatalf("SendMessage %d: %v", i, err)
		}
	}

	if len(f.repo.messages) != 5 {
		t.Errorf("messages = %d, want 5 (sends are never throttled)", len(f.repo.messages))
	}
	if got := f.notifs.countFor(model.RoleCompany, testCompany); got != 1 {
		t.Errorf("company notifications = %d, want 1 (burst dedup)", got)
	}
}

func TestGetThreadsFor_OnlyEnabled(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	enabled := f.enabledThread(t)
	if _, err := f.svc.GetOrCreateThread(context.Background(), uuid.New(), testCandidate, testCompany, "Disabled Thread"); err != nil {
		t.Fatalf("GetOrCreateThread: %v", err)
	}

	threads, err := f.svc.GetThreadsFor(context.Background(), testCandidate)
	if err != nil {
		t.Fatalf("GetThreadsFor: %v", err)
	}
	if len(threads) != 1 || threads[0].ID != enabled.ID {
		t.Errorf("GetThreadsFor = %d threads, want only the enabled one", len(threads))
	}
}

func TestGetMessages_ParticipantOnly(t *testing.T) {
	f := newChatFixture(2 * time.Second)
	thread := f.enabledThread(t)
	if _, err := f.svc.SendMessage(context.Background(), thread.ID, testCandidate, model.RoleCandidate, "halo", ""); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if _, err := f.svc.GetMessages(context.Background(), thread.ID, "penyusup@example.com"); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}

	msgs, err := f.svc.GetMessages(context.Background(), thread.ID, testCompany)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("messages = %d, want 1", len(msgs))
	}
}
