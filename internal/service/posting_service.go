package service

import (
	"context"
	"errors"
	"log"

	"anoa.com/magangmatch/internal/dto"
	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/repository"
	"anoa.com/magangmatch/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type PostingService interface {
	Create(ctx context.Context, companyEmail string, req dto.CreatePostingRequest) (*model.Posting, error)
	Update(ctx context.Context, companyEmail string, id uuid.UUID, req dto.UpdatePostingRequest) (*model.Posting, error)
	SetLifecycle(ctx context.Context, companyEmail string, id uuid.UUID, st model.PostingStatus) (*model.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Posting, error)
	ListActive(ctx context.Context) ([]model.Posting, error)
	ListByCompany(ctx context.Context, companyEmail string) ([]model.Posting, error)
}

type postingService struct {
	repo      repository.PostingRepository
	search    SearchService
	sanitizer *bluemonday.Policy
}

func NewPostingService(repo repository.PostingRepository, search SearchService) PostingService {
	return &postingService{
		repo:      repo,
		search:    search,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *postingService) Create(ctx context.Context, companyEmail string, req dto.CreatePostingRequest) (*model.Posting, error) {
	posting := &model.Posting{
		ID:              uuid.New(),
		CompanyEmail:    companyEmail,
		Title:           req.Title,
		Category:        req.Category,
		WorkMode:        req.WorkMode,
		Province:        req.Province,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
		Description:     s.sanitizer.Sanitize(req.Description),
		Status:          model.PostingActive,
	}
	if err := s.repo.Create(posting); err != nil {
		return nil, err
	}
	s.syncSearchIndex(posting)
	return posting, nil
}

func (s *postingService) Update(ctx context.Context, companyEmail string, id uuid.UUID, req dto.UpdatePostingRequest) (*model.Posting, error) {
	posting, err := s.ownedPosting(companyEmail, id)
	if err != nil {
		return nil, err
	}

	posting.Title = req.Title
	posting.Category = req.Category
	posting.WorkMode = req.WorkMode
	posting.Province = req.Province
	posting.RequiredSkills = req.RequiredSkills
	posting.PreferredSkills = req.PreferredSkills
	posting.Description = s.sanitizer.Sanitize(req.Description)

	if err := s.repo.Update(posting); err != nil {
		return nil, err
	}
	s.syncSearchIndex(posting)
	return posting, nil
}

func (s *postingService) SetLifecycle(ctx context.Context, companyEmail string, id uuid.UUID, st model.PostingStatus) (*model.Posting, error) {
	posting, err := s.ownedPosting(companyEmail, id)
	if err != nil {
		return nil, err
	}

	posting.Status = st
	if err := s.repo.Update(posting); err != nil {
		return nil, err
	}
	s.syncSearchIndex(posting)
	return posting, nil
}

func (s *postingService) Get(ctx context.Context, id uuid.UUID) (*model.Posting, error) {
	posting, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return posting, nil
}

func (s *postingService) ListActive(ctx context.Context) ([]model.Posting, error) {
	return s.repo.ListActive()
}

func (s *postingService) ListByCompany(ctx context.Context, companyEmail string) ([]model.Posting, error) {
	return s.repo.ListByCompany(companyEmail)
}

func (s *postingService) ownedPosting(companyEmail string, id uuid.UUID) (*model.Posting, error) {
	posting, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if posting.CompanyEmail != companyEmail {
		return nil, apperror.New(0, "lowongan milik perusahaan lain", apperror.ErrForbidden)
	}
	return posting, nil
}

// syncSearchIndex mirrors the posting's lifecycle into Meilisearch: active
// postings are indexed, everything else is removed. Search is a convenience
// layer, so failures are logged and never fail the write.
func (s *postingService) syncSearchIndex(posting *model.Posting) {
	if s.search == nil {
		return
	}
	var err error
	if posting.Status == model.PostingActive {
		err = s.search.IndexPosting(posting)
	} else {
		err = s.search.RemovePosting(posting.ID.String())
	}
	if err != nil {
		log.Printf("failed to sync posting %s to search index: %v", posting.ID, err)
	}
}
