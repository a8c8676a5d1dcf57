package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubmissionStatusDraft     = "draft"
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusApproved  = "approved"
)

// DaftarUlangSubmission is a re-enrollment confirmation. Submitted and
// approved submissions occupy a halaqah slot during quota recalculation;
// drafts do not.
type DaftarUlangSubmission struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	BatchID         *uuid.UUID     `json:"batch_id,omitempty" gorm:"type:uuid;index"`
	UjianHalaqahID  *uuid.UUID     `json:"ujian_halaqah_id,omitempty" gorm:"type:uuid;index"`
	TashihHalaqahID *uuid.UUID     `json:"tashih_halaqah_id,omitempty" gorm:"type:uuid;index"`
	Status          string         `json:"status" gorm:"not null;default:'draft';index"`
	SubmittedAt     *time.Time     `json:"submitted_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
