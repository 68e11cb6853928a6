package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"anoa.com/magangmatch/internal/dto"
	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/repository"
	"anoa.com/magangmatch/internal/scoring"
	"anoa.com/magangmatch/internal/status"
	"anoa.com/magangmatch/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationService owns the application ledger and the side effects its
// transitions trigger. The status write is always the source of truth and is
// committed first; thread and notification side effects run after it and
// degrade to a log line on failure — they are never rolled back into the
// status change.
type ApplicationService interface {
	Apply(ctx context.Context, candidateEmail string, postingID uuid.UUID) (*model.Application, error)
	SetStatus(ctx context.Context, companyEmail, candidateEmail string, postingID uuid.UUID, st status.Status) (*model.Application, error)
	GetStatus(ctx context.Context, candidateEmail string, postingID uuid.UUID) (status.Status, bool, error)
	ListByCandidate(ctx context.Context, candidateEmail string) ([]model.Application, error)
	RankCandidates(ctx context.Context, companyEmail string, postingID uuid.UUID) ([]dto.RankedCandidate, error)
	ScoreFor(ctx context.Context, candidateEmail string, postingID uuid.UUID) (scoring.Result, error)
	Withdraw(ctx context.Context, candidateEmail string, postingID uuid.UUID) error
}

type applicationService struct {
	repo          repository.ApplicationRepository
	postings      repository.PostingRepository
	profiles      repository.ProfileRepository
	chats         ChatService
	notifications NotificationService
}

func NewApplicationService(
	repo repository.ApplicationRepository,
	postings repository.PostingRepository,
	profiles repository.ProfileRepository,
	chats ChatService,
	notifications NotificationService,
) ApplicationService {
	return &applicationService{
		repo:          repo,
		postings:      postings,
		profiles:      profiles,
		chats:         chats,
		notifications: notifications,
	}
}

// Apply records the candidate's application and notifies the company. If the
// posting carries no company email the notification is skipped and logged;
// an application never fails because its notification could not be delivered.
func (s *applicationService) Apply(ctx context.Context, candidateEmail string, postingID uuid.UUID) (*model.Application, error) {
	posting, err := s.postings.GetByID(postingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if posting.Status != model.PostingActive {
		return nil, apperror.New(0, "lowongan tidak menerima lamaran", apperror.ErrInvalidInput)
	}

	app, err := s.repo.Upsert(candidateEmail, postingID, posting.CompanyEmail, status.Applied)
	if err != nil {
		return nil, err
	}

	if posting.CompanyEmail == "" {
		log.Printf("posting %s has no company email, skipping apply notification", postingID)
		return app, nil
	}

	applicantName := candidateEmail
	if profile, err := s.profiles.GetByEmail(candidateEmail); err == nil && profile.Name != "" {
		applicantName = profile.Name
	}
	notification := &model.Notification{
		RecipientRole:  model.RoleCompany,
		RecipientEmail: posting.CompanyEmail,
		Type:           model.NotificationApply,
		Title:          "Lamaran baru",
		Message:        fmt.Sprintf("%s melamar untuk %s", applicantName, posting.Title),
		PostingID:      &posting.ID,
		ActionURL:      fmt.Sprintf("/postings/%s/candidates", posting.ID),
	}
	if err := s.notifications.Push(ctx, notification); err != nil {
		log.Printf("failed to push apply notification for posting %s: %v", postingID, err)
	}

	return app, nil
}

// SetStatus is the company-facing transition. Shortlisting and rejecting
// notify the candidate; a transition to matched additionally creates and
// enables the chat thread. When the application is already matched or
// accepted, a matched transition is a no-op (not an error) so the thread is
// never recreated and the candidate is never re-notified.
func (s *applicationService) SetStatus(ctx context.Context, companyEmail, candidateEmail string, postingID uuid.UUID, st status.Status) (*model.Application, error) {
	posting, err := s.postings.GetByID(postingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if posting.CompanyEmail != companyEmail {
		return nil, apperror.New(0, "lowongan milik perusahaan lain", apperror.ErrForbidden)
	}

	current, err := s.repo.Get(candidateEmail, postingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if st == status.Matched && status.IsMatchLocked(current.Status) {
		return current, nil
	}

	app, err := s.repo.Upsert(candidateEmail, postingID, posting.CompanyEmail, st)
	if err != nil {
		return nil, err
	}

	switch st {
	case status.Shortlisted:
		s.notifyCandidate(ctx, candidateEmail, posting, model.NotificationSystem,
			"Lamaran masuk shortlist",
			fmt.Sprintf("Lamaran kamu untuk %s masuk shortlist", posting.Title), nil)
	case status.Rejected:
		s.notifyCandidate(ctx, candidateEmail, posting, model.NotificationSystem,
			"Lamaran ditolak",
			fmt.Sprintf("Lamaran kamu untuk %s ditolak", posting.Title), nil)
	case status.Matched:
		s.runMatchPipeline(ctx, candidateEmail, posting)
	}

	return app, nil
}

// runMatchPipeline performs the match side effects in order: get-or-create
// the thread, enable it, notify the candidate with the thread as the action
// target. Failures here are logged and never undo the status write.
func (s *applicationService) runMatchPipeline(ctx context.Context, candidateEmail string, posting *model.Posting) {
	thread, err := s.chats.GetOrCreateThread(ctx, posting.ID, candidateEmail, posting.CompanyEmail, posting.Title)
	if err != nil {
		log.Printf("match pipeline: failed to create thread for posting %s: %v", posting.ID, err)
		return
	}
	if _, err := s.chats.EnableThread(ctx, thread.ID); err != nil {
		log.Printf("match pipeline: failed to enable thread %s: %v", thread.ID, err)
		return
	}
	s.notifyCandidate(ctx, candidateEmail, posting, model.NotificationMatch,
		"Kamu diterima!",
		fmt.Sprintf("Selamat! Kamu diterima untuk %s. Percakapan dengan perusahaan sudah dibuka.", posting.Title),
		&thread.ID)
}

func (s *applicationService) notifyCandidate(ctx context.Context, candidateEmail string, posting *model.Posting, ntype, title, message string, threadID *uuid.UUID) {
	notification := &model.Notification{
		RecipientRole:  model.RoleCandidate,
		RecipientEmail: candidateEmail,
		Type:           ntype,
		Title:          title,
		Message:        message,
		PostingID:      &posting.ID,
		ThreadID:       threadID,
	}
	if threadID != nil {
		notification.ActionURL = fmt.Sprintf("/chats/%s", threadID)
	}
	if err := s.notifications.Push(ctx, notification); err != nil {
		log.Printf("failed to push %s notification for posting %s: %v", ntype, posting.ID, err)
	}
}

func (s *applicationService) GetStatus(ctx context.Context, candidateEmail string, postingID uuid.UUID) (status.Status, bool, error) {
	app, err := s.repo.Get(candidateEmail, postingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return app.Status, true, nil
}

func (s *applicationService) ListByCandidate(ctx context.Context, candidateEmail string) ([]model.Application, error) {
	return s.repo.ListByCandidate(candidateEmail)
}

// RankCandidates scores every applicant of a posting for the company's
// candidate list, highest score first. Applicants without a profile score
// zero rather than erroring out.
func (s *applicationService) RankCandidates(ctx context.Context, companyEmail string, postingID uuid.UUID) ([]dto.RankedCandidate, error) {
	posting, err := s.postings.GetByID(postingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if posting.CompanyEmail != companyEmail {
		return nil, apperror.ErrForbidden
	}

	apps, err := s.repo.ListByPosting(postingID)
	if err != nil {
		return nil, err
	}

	ranked := make([]dto.RankedCandidate, 0, len(apps))
	for i := range apps {
		app := apps[i]
		var profile *model.CandidateProfile
		if p, err := s.profiles.GetByEmail(app.CandidateEmail); err == nil {
			profile = p
		}
		row := dto.RankedCandidate{
			CandidateEmail: app.CandidateEmail,
			Status:         app.Status,
			Score:          scoring.Compute(profile, posting),
			Application:    &app,
		}
		if profile != nil {
			row.Name = profile.Name
			row.HasResume = profile.HasResume
		}
		ranked = append(ranked, row)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.TotalScore > ranked[j].Score.TotalScore
	})
	return ranked, nil
}

func (s *applicationService) ScoreFor(ctx context.Context, candidateEmail string, postingID uuid.UUID) (scoring.Result, error) {
	posting, err := s.postings.GetByID(postingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return scoring.Result{}, apperror.ErrNotFound
		}
		return scoring.Result{}, err
	}
	var profile *model.CandidateProfile
	if p, err := s.profiles.GetByEmail(candidateEmail); err == nil {
		profile = p
	}
	return scoring.Compute(profile, posting), nil
}

// Withdraw deletes the application outright. History is intentionally not
// kept for withdrawals, unlike the retained rejected status.
func (s *applicationService) Withdraw(ctx context.Context, candidateEmail string, postingID uuid.UUID) error {
	err := s.repo.Delete(candidateEmail, postingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}
