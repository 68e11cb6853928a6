package repository

import (
	"time"

	"anoa.com/magangmatch/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository interface {
	FindThread(postingID uuid.UUID, candidateEmail, companyEmail string) (*model.ChatThread, error)
	CreateThread(thread *model.ChatThread) error
	UpdateThread(thread *model.ChatThread) error
	GetThread(id uuid.UUID) (*model.ChatThread, error)
	// ListEnabledFor returns only enabled threads where email is a
	// participant, most recently active first.
	ListEnabledFor(email string) ([]model.ChatThread, error)
	CreateMessage(msg *model.ChatMessage) error
	ListMessages(threadID uuid.UUID) ([]model.ChatMessage, error)
	// TouchThread bumps a thread's updated_at (to the latest message time).
	TouchThread(id uuid.UUID, at time.Time) error
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) FindThread(postingID uuid.UUID, candidateEmail, companyEmail string) (*model.ChatThread, error) {
	var thread model.ChatThread
	err := r.db.Where("posting_id = ? AND candidate_email = ? AND company_email = ?",
		postingID, candidateEmail, companyEmail).
		First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *chatRepository) CreateThread(thread *model.ChatThread) error {
	return r.db.Create(thread).Error
}

func (r *chatRepository) UpdateThread(thread *model.ChatThread) error {
	return r.db.Save(thread).Error
}

func (r *chatRepository) GetThread(id uuid.UUID) (*model.ChatThread, error) {
	var thread model.ChatThread
	err := r.db.Where("id = ?", id).First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *chatRepository) ListEnabledFor(email string) ([]model.ChatThread, error) {
	var threads []model.ChatThread
	err := r.db.Where("enabled = ? AND (candidate_email = ? OR company_email = ?)",
		true, email, email).
		Order("updated_at desc").
		Find(&threads).Error
	return threads, err
}

func (r *chatRepository) CreateMessage(msg *model.ChatMessage) error {
	return r.db.Create(msg).Error
}

func (r *chatRepository) ListMessages(threadID uuid.UUID) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.db.Where("thread_id = ?", threadID).
		Order("created_at asc").
		Find(&messages).Error
	return messages, err
}

func (r *chatRepository) TouchThread(id uuid.UUID, at time.Time) error {
	return r.db.Model(&model.ChatThread{}).Where("id = ?", id).
		Update("updated_at", at).Error
}
