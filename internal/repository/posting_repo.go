package repository

import (
	"anoa.com/magangmatch/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostingRepository interface {
	Create(posting *model.Posting) error
	Update(posting *model.Posting) error
	GetByID(id uuid.UUID) (*model.Posting, error)
	ListActive() ([]model.Posting, error)
	ListByCompany(companyEmail string) ([]model.Posting, error)
}

type postingRepository struct {
	db *gorm.DB
}

func NewPostingRepository(db *gorm.DB) PostingRepository {
	return &postingRepository{db: db}
}

func (r *postingRepository) Create(posting *model.Posting) error {
	return r.db.Create(posting).Error
}

func (r *postingRepository) Update(posting *model.Posting) error {
	return r.db.Save(posting).Error
}

func (r *postingRepository) GetByID(id uuid.UUID) (*model.Posting, error) {
	var posting model.Posting
	err := r.db.Where("id = ?", id).First(&posting).Error
	if err != nil {
		return nil, err
	}
	return &posting, nil
}

// ListActive returns the candidate-facing listing: paused and archived
// postings are excluded.
func (r *postingRepository) ListActive() ([]model.Posting, error) {
	var postings []model.Posting
	err := r.db.Where("status = ?", model.PostingActive).
		Order("created_at desc").
		Find(&postings).Error
	return postings, err
}

func (r *postingRepository) ListByCompany(companyEmail string) ([]model.Posting, error) {
	var postings []model.Posting
	err := r.db.Where("company_email = ?", companyEmail).
		Order("created_at desc").
		Find(&postings).Error
	return postings, err
}
