package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/repository"
	"anoa.com/magangmatch/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ChatService is the messaging gate. Threads exist only as a byproduct of a
// successful match; there is no user-facing way to create one, which is what
// keeps unmatched parties from messaging each other.
type ChatService interface {
	GetOrCreateThread(ctx context.Context, postingID uuid.UUID, candidateEmail, companyEmail, title string) (*model.ChatThread, error)
	EnableThread(ctx context.Context, threadID uuid.UUID) (*model.ChatThread, error)
	GetThreadsFor(ctx context.Context, email string) ([]model.ChatThread, error)
	GetMessages(ctx context.Context, threadID uuid.UUID, requesterEmail string) ([]model.ChatMessage, error)
	SendMessage(ctx context.Context, threadID uuid.UUID, senderEmail, senderRole, text, msgType string) (*model.ChatMessage, error)
}

type chatService struct {
	repo          repository.ChatRepository
	notifications NotificationService
	redisClient   *redis.Client
	sanitizer     *bluemonday.Policy
}

func NewChatService(repo repository.ChatRepository, notifications NotificationService, redisClient *redis.Client) ChatService {
	return &chatService{
		repo:          repo,
		notifications: notifications,
		redisClient:   redisClient,
		sanitizer:     bluemonday.StrictPolicy(),
	}
}

// ThreadsChannel is the redis pub/sub channel signalling that a participant's
// thread list changed. Consumers re-fetch; no payload is carried.
func ThreadsChannel(email string) string {
	return fmt.Sprintf("threads:%s", email)
}

func (s *chatService) signalThreadChange(ctx context.Context, emails ...string) {
	if s.redisClient == nil {
		return
	}
	for _, email := range emails {
		s.redisClient.Publish(ctx, ThreadsChannel(email), "changed")
	}
}

func (s *chatService) GetOrCreateThread(ctx context.Context, postingID uuid.UUID, candidateEmail, companyEmail, title string) (*model.ChatThread, error) {
	thread, err := s.repo.FindThread(postingID, candidateEmail, companyEmail)
	if err == nil {
		// Refresh the cached display title; it may lag the posting.
		thread.InternshipTitle = title
		thread.UpdatedAt = time.Now()
		if err := s.repo.UpdateThread(thread); err != nil {
			return nil, err
		}
		return thread, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	thread = &model.ChatThread{
		ID:              uuid.New(),
		PostingID:       postingID,
		CandidateEmail:  candidateEmail,
		CompanyEmail:    companyEmail,
		InternshipTitle: title,
		Enabled:         false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.CreateThread(thread); err != nil {
		return nil, err
	}
	return thread, nil
}

// EnableThread flips enabled to true. Enabled is monotonic — there is no way
// back to false — so calling this on an already-enabled thread just returns it.
func (s *chatService) EnableThread(ctx context.Context, threadID uuid.UUID) (*model.ChatThread, error) {
	thread, err := s.repo.GetThread(threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if thread.Enabled {
		return thread, nil
	}
	thread.Enabled = true
	thread.UpdatedAt = time.Now()
	if err := s.repo.UpdateThread(thread); err != nil {
		return nil, err
	}
	s.signalThreadChange(ctx, thread.CandidateEmail, thread.CompanyEmail)
	return thread, nil
}

func (s *chatService) GetThreadsFor(ctx context.Context, email string) ([]model.ChatThread, error) {
	return s.repo.ListEnabledFor(email)
}

func (s *chatService) GetMessages(ctx context.Context, threadID uuid.UUID, requesterEmail string) ([]model.ChatMessage, error) {
	thread, err := s.repo.GetThread(threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if !thread.IsParticipant(requesterEmail) {
		return nil, apperror.ErrForbidden
	}
	return s.repo.ListMessages(threadID)
}

func (s *chatService) SendMessage(ctx context.Context, threadID uuid.UUID, senderEmail, senderRole, text, msgType string) (*model.ChatMessage, error) {
	thread, err := s.repo.GetThread(threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if !thread.Enabled {
		return nil, apperror.New(0, "messaging is not enabled for this thread", apperror.ErrForbidden)
	}
	recipientRole, recipientEmail, ok := thread.OtherParticipant(senderEmail)
	if !ok {
		return nil, apperror.New(0, "sender is not a participant of this thread", apperror.ErrForbidden)
	}

	if msgType == "" {
		msgType = model.MessageTypeText
	}
	msg := &model.ChatMessage{
		ID:          uuid.New(),
		ThreadID:    threadID,
		SenderEmail: senderEmail,
		SenderRole:  senderRole,
		Text:        s.sanitizer.Sanitize(text),
		Type:        msgType,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.CreateMessage(msg); err != nil {
		return nil, err
	}

	// The thread's updated_at tracks its latest message so the thread list
	// sorts by recent activity.
	if err := s.repo.TouchThread(threadID, msg.CreatedAt); err != nil {
		log.Printf("failed to bump thread %s: %v", threadID, err)
	}
	s.signalThreadChange(ctx, thread.CandidateEmail, thread.CompanyEmail)

	// Notify the other participant. Delivery is best-effort: a failed
	// notification never fails the send.
	notification := &model.Notification{
		RecipientRole:  recipientRole,
		RecipientEmail: recipientEmail,
		Type:           model.NotificationMessage,
		Title:          "Pesan baru",
		Message:        fmt.Sprintf("Pesan baru di percakapan %s", thread.InternshipTitle),
		ThreadID:       &thread.ID,
		ActionURL:      fmt.Sprintf("/chats/%s", thread.ID),
	}
	if _, err := s.notifications.PushMessage(ctx, notification, thread.ID); err != nil {
		log.Printf("failed to push message notification for thread %s: %v", threadID, err)
	}

	return msg, nil
}
