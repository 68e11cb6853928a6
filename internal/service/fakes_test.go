package service

import (
	"sort"
	"time"

	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/status"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the persistence semantics the gorm
// implementations provide (gorm.ErrRecordNotFound on miss, sorted listings)
// so the services under test see the same contract.

type fakePostingRepo struct {
	postings map[uuid.UUID]*model.Posting
}

func newFakePostingRepo() *fakePostingRepo {
	return &fakePostingRepo{postings: make(map[uuid.UUID]*model.Posting)}
}

func (r *fakePostingRepo) Create(p *model.Posting) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.postings[p.ID] = &cp
	return nil
}

func (r *fakePostingRepo) Update(p *model.Posting) error {
	cp := *p
	r.postings[p.ID] = &cp
	return nil
}

func (r *fakePostingRepo) GetByID(id uuid.UUID) (*model.Posting, error) {
	p, ok := r.postings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostingRepo) ListActive() ([]model.Posting, error) {
	var out []model.Posting
	for _, p := range r.postings {
		if p.Status == model.PostingActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostingRepo) ListByCompany(email string) ([]model.Posting, error) {
	var out []model.Posting
	for _, p := range r.postings {
		if p.CompanyEmail == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[string]*model.CandidateProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*model.CandidateProfile)}
}

func (r *fakeProfileRepo) Save(p *model.CandidateProfile) error {
	cp := *p
	r.profiles[p.Email] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByEmail(email string) (*model.CandidateProfile, error) {
	p, ok := r.profiles[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeApplicationRepo struct {
	apps []*model.Application
}

func (r *fakeApplicationRepo) find(candidateEmail string, postingID uuid.UUID) *model.Application {
	for _, a := range r.apps {
		if a.CandidateEmail == candidateEmail && a.PostingID == postingID {
			return a
		}
	}
	return nil
}

func (r *fakeApplicationRepo) Upsert(candidateEmail string, postingID uuid.UUID, companyEmail string, st status.Status) (*model.Application, error) {
	if a := r.find(candidateEmail, postingID); a != nil {
		a.Status = st
		if companyEmail != "" {
			a.CompanyEmail = companyEmail
		}
		a.UpdatedAt = time.Now()
		cp := *a
		return &cp, nil
	}
	now := time.Now()
	a := &model.Application{
		ID:             uuid.New(),
		CandidateEmail: candidateEmail,
		PostingID:      postingID,
		CompanyEmail:   companyEmail,
		Status:         st,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.apps = append(r.apps, a)
	cp := *a
	return &cp, nil
}

func (r *fakeApplicationRepo) Get(candidateEmail string, postingID uuid.UUID) (*model.Application, error) {
	a := r.find(candidateEmail, postingID)
	if a == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeApplicationRepo) ListByPosting(postingID uuid.UUID) ([]model.Application, error) {
	var out []model.Application
	for _, a := range r.apps {
		if a.PostingID == postingID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByCandidate(candidateEmail string) ([]model.Application, error) {
	var out []model.Application
	for _, a := range r.apps {
		if a.CandidateEmail == candidateEmail {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) Delete(candidateEmail string, postingID uuid.UUID) error {
	for i, a := range r.apps {
		if a.CandidateEmail == candidateEmail && a.PostingID == postingID {
			r.apps = append(r.apps[:i], r.apps[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeChatRepo struct {
	threads  []*model.ChatThread
	messages []*model.ChatMessage
}

func (r *fakeChatRepo) FindThread(postingID uuid.UUID, candidateEmail, companyEmail string) (*model.ChatThread, error) {
	for _, t := range r.threads {
		if t.PostingID == postingID && t.CandidateEmail == candidateEmail && t.CompanyEmail == companyEmail {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeChatRepo) CreateThread(t *model.ChatThread) error {
	cp := *t
	r.threads = append(r.threads, &cp)
	return nil
}

func (r *fakeChatRepo) UpdateThread(t *model.ChatThread) error {
	for i, old := range r.threads {
		if old.ID == t.ID {
			cp := *t
			r.threads[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeChatRepo) GetThread(id uuid.UUID) (*model.ChatThread, error) {
	for _, t := range r.threads {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeChatRepo) ListEnabledFor(email string) ([]model.ChatThread, error) {
	var out []model.ChatThread
	for _, t := range r.threads {
		if t.Enabled && (t.CandidateEmail == email || t.CompanyEmail == email) {
			out = append(out, *t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *fakeChatRepo) CreateMessage(m *model.ChatMessage) error {
	cp := *m
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *fakeChatRepo) ListMessages(threadID uuid.UUID) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	for _, m := range r.messages {
		if m.ThreadID == threadID {
			out = append(out, *m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeChatRepo) TouchThread(id uuid.UUID, at time.Time) error {
	for _, t := range r.threads {
		if t.ID == id {
			t.UpdatedAt = at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeNotificationRepo struct {
	items []*model.Notification
}

func (r *fakeNotificationRepo) Create(n *model.Notification) error {
	cp := *n
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(role, email string, limit, offset int) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range r.items {
		if n.RecipientRole == role && n.RecipientEmail == email {
			out = append(out, *n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(role, email string, id uuid.UUID) error {
	for _, n := range r.items {
		if n.ID == id && n.RecipientRole == role && n.RecipientEmail == email && n.ReadAt == nil {
			now := time.Now()
			n.ReadAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(role, email string) error {
	now := time.Now()
	for _, n := range r.items {
		if n.RecipientRole == role && n.RecipientEmail == email && n.ReadAt == nil {
			at := now
			n.ReadAt = &at
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(role, email string) (int64, error) {
	var count int64
	for _, n := range r.items {
		if n.RecipientRole == role && n.RecipientEmail == email && n.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

// countFor counts stored notifications for a recipient regardless of read
// state, used by side-effect assertions.
func (r *fakeNotificationRepo) countFor(role, email string) int {
	count := 0
	for _, n := range r.items {
		if n.RecipientRole == role && n.RecipientEmail == email {
			count++
		}
	}
	return count
}
