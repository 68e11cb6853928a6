package repository

import (
	"anoa.com/magangmatch/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Save(profile *model.CandidateProfile) error
	GetByEmail(email string) (*model.CandidateProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Save(profile *model.CandidateProfile) error {
	return r.db.Save(profile).Error
}

func (r *profileRepository) GetByEmail(email string) (*model.CandidateProfile, error) {
	var profile model.CandidateProfile
	err := r.db.Where("email = ?", email).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
