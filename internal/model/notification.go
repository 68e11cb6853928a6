package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationApply   = "apply"
	NotificationMatch   = "match"
	NotificationMessage = "message"
	NotificationSystem  = "system"
)

// Notification is one entry in a per-(role, email) inbox. ReadAt is null
// until the recipient marks it read and, once set, is never cleared.
type Notification struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RecipientRole  string     `gorm:"type:varchar(20);not null;index:ix_inbox,priority:1" json:"recipient_role"`
	RecipientEmail string     `gorm:"type:varchar(255);not null;index:ix_inbox,priority:2" json:"recipient_email"`
	Type           string     `gorm:"type:varchar(20);not null" json:"type"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Message        string     `gorm:"type:text" json:"message"`
	ThreadID       *uuid.UUID `gorm:"type:uuid" json:"thread_id,omitempty"`
	PostingID      *uuid.UUID `gorm:"type:uuid" json:"posting_id,omitempty"`
	ActionURL      string     `gorm:"type:text" json:"action_url,omitempty"`
	ReadAt         *time.Time `json:"read_at"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
