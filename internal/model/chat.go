package model

import (
	"time"

	"github.com/google/uuid"
)

// Participant roles. These double as notification recipient roles.
const (
	RoleCandidate = "candidate"
	RoleCompany   = "company"
)

// Chat message types.
const (
	MessageTypeText      = "text"
	MessageTypeInterview = "interview" // interview-scheduling payload in Text
)

// ChatThread is the gated one-to-one channel between a candidate and a
// company for one posting. Threads are never user-created; they appear as a
// byproduct of a successful match and are never deleted. Enabled is
// monotonic: once true it never reverts, and a disabled thread accepts no
// messages.
//
// InternshipTitle is a display cache copied from the posting; it may lag the
// source record and is not part of any invariant.
type ChatThread struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostingID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_thread_triple,priority:1" json:"posting_id"`
	CandidateEmail  string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_thread_triple,priority:2;index" json:"candidate_email"`
	CompanyEmail    string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_thread_triple,priority:3;index" json:"company_email"`
	InternshipTitle string    `gorm:"type:varchar(255)" json:"internship_title"`
	Enabled         bool      `gorm:"not null;default:false" json:"enabled"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// IsParticipant reports whether email is one of the thread's two parties.
func (t *ChatThread) IsParticipant(email string) bool {
	return email == t.CandidateEmail || email == t.CompanyEmail
}

// OtherParticipant returns the role and email of the counterpart of email.
// The second return is false when email is not a participant at all.
func (t *ChatThread) OtherParticipant(email string) (role, other string, ok bool) {
	switch email {
	case t.CandidateEmail:
		return RoleCompany, t.CompanyEmail, true
	case t.CompanyEmail:
		return RoleCandidate, t.CandidateEmail, true
	}
	return "", "", false
}

// ChatMessage is one append-only entry in a thread. No edits, no deletes;
// ordering within a thread is CreatedAt ascending.
type ChatMessage struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ThreadID    uuid.UUID `gorm:"type:uuid;not null;index" json:"thread_id"`
	SenderEmail string    `gorm:"type:varchar(255);not null" json:"sender_email"`
	SenderRole  string    `gorm:"type:varchar(20);not null" json:"sender_role"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Type        string    `gorm:"type:varchar(20);not null;default:'text'" json:"type"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
