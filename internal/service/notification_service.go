package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type NotificationService interface {
	// Push stores the notification and publishes a change signal for the
	// recipient's inbox.
	Push(ctx context.Context, notification *model.Notification) error
	// PushMessage is Push behind the burst dedup guard for "new message"
	// notifications. It returns whether the notification was delivered.
	PushMessage(ctx context.Context, notification *model.Notification, threadID uuid.UUID) (bool, error)
	GetNotifications(role, email string, limit, offset int) ([]model.Notification, error)
	MarkRead(role, email string, id uuid.UUID) error
	MarkAllRead(role, email string) error
	UnreadCount(role, email string) (int64, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
	guard       *messageGuard
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client, dedupWindow time.Duration) NotificationService {
	if dedupWindow <= 0 {
		dedupWindow = 2 * time.Second
	}
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
		guard:       newMessageGuard(dedupWindow),
	}
}

// InboxChannel is the redis pub/sub channel carrying change signals for one
// (role, email) inbox. Consumers re-fetch; the payload is informational.
func InboxChannel(role, email string) string {
	return fmt.Sprintf("inbox:%s:%s", role, email)
}

func (s *notificationService) Push(ctx context.Context, notification *model.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	// 1. Save to DB
	if err := s.repo.Create(notification); err != nil {
		return err
	}

	// 2. Publish the change signal if Redis is available
	if s.redisClient != nil {
		channel := InboxChannel(notification.RecipientRole, notification.RecipientEmail)

		payload, err := json.Marshal(notification)
		if err == nil {
			s.redisClient.Publish(ctx, channel, payload)
		}
	}

	return nil
}

// PushMessage suppresses notification storms from message bursts: the
// recipient gets one alert per conversation-gone-quiet-then-active-again
// cycle rather than one per message. Best-effort and in-process only; it is
// not a cross-session durability guarantee.
func (s *notificationService) PushMessage(ctx context.Context, notification *model.Notification, threadID uuid.UUID) (bool, error) {
	key := fmt.Sprintf("%s:%s:%s", notification.RecipientRole, notification.RecipientEmail, threadID)
	if s.guard.recentlyPushed(key) {
		return false, nil
	}
	unread, err := s.repo.CountUnread(notification.RecipientRole, notification.RecipientEmail)
	if err != nil {
		return false, err
	}
	if unread > 0 {
		// The recipient already has something waiting; no extra alert.
		return false, nil
	}
	if err := s.Push(ctx, notification); err != nil {
		return false, err
	}
	s.guard.record(key)
	return true, nil
}

func (s *notificationService) GetNotifications(role, email string, limit, offset int) ([]model.Notification, error) {
	return s.repo.ListByRecipient(role, email, limit, offset)
}

func (s *notificationService) MarkRead(role, email string, id uuid.UUID) error {
	return s.repo.MarkRead(role, email, id)
}

func (s *notificationService) MarkAllRead(role, email string) error {
	return s.repo.MarkAllRead(role, email)
}

func (s *notificationService) UnreadCount(role, email string) (int64, error) {
	return s.repo.CountUnread(role, email)
}

// messageGuard remembers the last message-notification push per
// (role, email, thread) key for the dedup window.
type messageGuard struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
}

func newMessageGuard(window time.Duration) *messageGuard {
	return &messageGuard{
		window: window,
		last:   make(map[string]time.Time),
	}
}

func (g *messageGuard) recentlyPushed(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	at, ok := g.last[key]
	return ok && time.Since(at) < g.window
}

func (g *messageGuard) record(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last[key] = time.Now()
}
