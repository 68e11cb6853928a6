package repository

import (
	"time"

	"anoa.com/magangmatch/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	ListByRecipient(role, email string, limit, offset int) ([]model.Notification, error)
	MarkRead(role, email string, id uuid.UUID) error
	MarkAllRead(role, email string) error
	CountUnread(role, email string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) ListByRecipient(role, email string, limit, offset int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Where("recipient_role = ? AND recipient_email = ?", role, email).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead sets read_at once. A second call matches no rows (read_at is no
// longer null), which makes the operation idempotent without a read-first.
func (r *notificationRepository) MarkRead(role, email string, id uuid.UUID) error {
	return r.db.Model(&model.Notification{}).
		Where("id = ? AND recipient_role = ? AND recipient_email = ? AND read_at IS NULL",
			id, role, email).
		Update("read_at", time.Now()).Error
}

func (r *notificationRepository) MarkAllRead(role, email string) error {
	return r.db.Model(&model.Notification{}).
		Where("recipient_role = ? AND recipient_email = ? AND read_at IS NULL", role, email).
		Update("read_at", time.Now()).Error
}

func (r *notificationRepository) CountUnread(role, email string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("recipient_role = ? AND recipient_email = ? AND read_at IS NULL", role, email).
		Count(&count).Error
	return count, err
}
