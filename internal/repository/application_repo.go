package repository

import (
	"errors"
	"time"

	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/status"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	// Upsert writes the status for the (candidateEmail, postingID) pair.
	// An existing row keeps its CreatedAt; UpdatedAt is always refreshed.
	Upsert(candidateEmail string, postingID uuid.UUID, companyEmail string, st status.Status) (*model.Application, error)
	Get(candidateEmail string, postingID uuid.UUID) (*model.Application, error)
	ListByPosting(postingID uuid.UUID) ([]model.Application, error)
	ListByCandidate(candidateEmail string) ([]model.Application, error)
	Delete(candidateEmail string, postingID uuid.UUID) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Upsert(candidateEmail string, postingID uuid.UUID, companyEmail string, st status.Status) (*model.Application, error) {
	var app model.Application
	err := r.db.Where("candidate_email = ? AND posting_id = ?", candidateEmail, postingID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		app = model.Application{
			CandidateEmail: candidateEmail,
			PostingID:      postingID,
			CompanyEmail:   companyEmail,
			Status:         st,
		}
		if err := r.db.Create(&app).Error; err != nil {
			return nil, err
		}
		return &app, nil
	}
	if err != nil {
		return nil, err
	}

	app.Status = st
	if companyEmail != "" {
		app.CompanyEmail = companyEmail
	}
	app.UpdatedAt = time.Now()
	if err := r.db.Save(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Get(candidateEmail string, postingID uuid.UUID) (*model.Application, error) {
	var app model.Application
	err := r.db.Where("candidate_email = ? AND posting_id = ?", candidateEmail, postingID).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByPosting(postingID uuid.UUID) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Where("posting_id = ?", postingID).
		Order("created_at desc").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListByCandidate(candidateEmail string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Where("candidate_email = ?", candidateEmail).
		Order("created_at desc").
		Find(&apps).Error
	return apps, err
}

// Delete removes the pair's row entirely (withdrawal). This is distinct from
// the rejected status, which is retained for history.
func (r *applicationRepository) Delete(candidateEmail string, postingID uuid.UUID) error {
	res := r.db.Where("candidate_email = ? AND posting_id = ?", candidateEmail, postingID).
		Delete(&model.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
