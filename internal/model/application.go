package model

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/magangmatch/internal/status"
)

// Application records one candidate pursuing one posting. At most one row
// exists per (candidate_email, posting_id) pair; writes upsert by that key.
// CompanyEmail is denormalized from the posting for fast company-side lookup.
type Application struct {
	ID             uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CandidateEmail string        `gorm:"type:varchar(255);not null;uniqueIndex:ux_candidate_posting,priority:1" json:"candidate_email"`
	PostingID      uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:ux_candidate_posting,priority:2;index" json:"posting_id"`
	CompanyEmail   string        `gorm:"type:varchar(255);not null;index" json:"company_email"`
	Status         status.Status `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}
