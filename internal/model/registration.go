package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RegistrationStatusPending  = "pending"
	RegistrationStatusApproved = "approved"
	RegistrationStatusRejected = "rejected"

	ExamStatusNotStarted = "not_started"
	ExamStatusInProgress = "in_progress"
	ExamStatusCompleted  = "completed"
)

// Registration is a pendaftaran tikrar tahfidz record. The exam fields
// mirror the latest attempt state for quick dashboard lookups; the attempt
// table stays the source of truth.
type Registration struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	FullName        string         `json:"full_name" gorm:"not null"`
	ChosenJuz       string         `json:"chosen_juz" gorm:"not null"`
	Status          string         `json:"status" gorm:"not null;default:'pending';index"`
	ExamJuzNumber   *int           `json:"exam_juz_number,omitempty"`
	ExamStatus      string         `json:"exam_status" gorm:"default:'not_started'"`
	ExamAttemptID   *uuid.UUID     `json:"exam_attempt_id,omitempty" gorm:"type:uuid"`
	ExamScore       *int           `json:"exam_score,omitempty"`
	ExamSubmittedAt *time.Time     `json:"exam_submitted_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
