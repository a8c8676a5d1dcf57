package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnrollmentStatusActive   = "active"
	EnrollmentStatusWaitlist = "waitlist"
	EnrollmentStatusDropped  = "dropped"

	EnrollmentTypeNew          = "new"
	EnrollmentTypeReEnrollment = "re_enrollment"
)

// HalaqahStudent is a membership record. A thalibah holds at most one
// non-dropped record per halaqah; waitlist order is FIFO by JoinedWaitlistAt.
type HalaqahStudent struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	HalaqahID        uuid.UUID      `json:"halaqah_id" gorm:"type:uuid;not null;index:idx_halaqah_thalibah"`
	Halaqah          Halaqah        `json:"halaqah,omitempty" gorm:"foreignKey:HalaqahID"`
	ThalibahID       uuid.UUID      `json:"thalibah_id" gorm:"type:uuid;not null;index:idx_halaqah_thalibah"`
	Status           string         `json:"status" gorm:"not null;index"`
	EnrollmentType   string         `json:"enrollment_type" gorm:"not null;default:'re_enrollment'"`
	AssignedAt       time.Time      `json:"assigned_at"`
	JoinedWaitlistAt *time.Time     `json:"joined_waitlist_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
