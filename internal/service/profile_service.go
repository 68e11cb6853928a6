package service

import (
	"context"
	"errors"
	"io"
	"log"

	"anoa.com/magangmatch/internal/dto"
	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/repository"
	"anoa.com/magangmatch/pkg/apperror"
	"anoa.com/magangmatch/pkg/storage"
	"gorm.io/gorm"
)

type ProfileService interface {
	Get(ctx context.Context, email string) (*model.CandidateProfile, error)
	Upsert(ctx context.Context, email string, req dto.UpdateProfileRequest) (*model.CandidateProfile, error)
	UploadResume(ctx context.Context, email string, r io.Reader, fileName string) (*model.CandidateProfile, error)
}

type profileService struct {
	repo         repository.ProfileRepository
	fileStorage  storage.FileStorage
	resumeFolder string
}

func NewProfileService(repo repository.ProfileRepository, fileStorage storage.FileStorage, resumeFolder string) ProfileService {
	if resumeFolder == "" {
		resumeFolder = "resumes"
	}
	return &profileService{
		repo:         repo,
		fileStorage:  fileStorage,
		resumeFolder: resumeFolder,
	}
}

func (s *profileService) Get(ctx context.Context, email string) (*model.CandidateProfile, error) {
	profile, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Upsert(ctx context.Context, email string, req dto.UpdateProfileRequest) (*model.CandidateProfile, error) {
	profile, err := s.repo.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = &model.CandidateProfile{Email: email}
	} else if err != nil {
		return nil, err
	}

	profile.Name = req.Name
	profile.Skills = req.Skills
	profile.Province = req.Province

	if err := s.repo.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UploadResume stores the file and flips the profile's resume-presence flag.
// A previous resume is deleted from storage best-effort.
func (s *profileService) UploadResume(ctx context.Context, email string, r io.Reader, fileName string) (*model.CandidateProfile, error) {
	if s.fileStorage == nil {
		return nil, apperror.ErrInternal
	}

	profile, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(0, "lengkapi profil terlebih dahulu", apperror.ErrBadRequest)
		}
		return nil, err
	}

	url, err := s.fileStorage.UploadFile(ctx, r, s.resumeFolder, fileName)
	if err != nil {
		return nil, err
	}

	oldURL := profile.ResumeURL
	profile.ResumeURL = url
	profile.HasResume = true
	if err := s.repo.Save(profile); err != nil {
		return nil, err
	}

	if oldURL != "" && oldURL != url {
		if err := s.fileStorage.DeleteFile(ctx, oldURL); err != nil {
			log.Printf("failed to delete previous resume for %s: %v", email, err)
		}
	}

	return profile, nil
}
