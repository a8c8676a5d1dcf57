package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	HalaqahStatusActive   = "active"
	HalaqahStatusInactive = "inactive"

	DefaultMaxStudents = 20
	DefaultWaitlistMax = 5
)

// Halaqah is a capacity-bounded study group led by a muallimah.
type Halaqah struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `json:"name" gorm:"not null"`
	Description  string         `json:"description,omitempty"`
	MuallimahID  *uuid.UUID     `json:"muallimah_id,omitempty" gorm:"type:uuid;index"`
	DayOfWeek    int            `json:"day_of_week"`
	StartTime    string         `json:"start_time,omitempty"`
	EndTime      string         `json:"end_time,omitempty"`
	Location     string         `json:"location,omitempty"`
	ZoomLink     string         `json:"zoom_link,omitempty"`
	PreferredJuz string         `json:"preferred_juz,omitempty"`
	MaxStudents  int            `json:"max_students" gorm:"not null;default:20"`
	WaitlistMax  int            `json:"waitlist_max" gorm:"not null;default:5"`
	Status       string         `json:"status" gorm:"not null;default:'active';index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectiveMaxStudents guards against legacy rows created before the
// capacity columns had defaults.
func (h *Halaqah) EffectiveMaxStudents() int {
	if h.MaxStudents <= 0 {
		return DefaultMaxStudents
	}
	return h.MaxStudents
}

func (h *Halaqah) EffectiveWaitlistMax() int {
	if h.WaitlistMax <= 0 {
		return DefaultWaitlistMax
	}
	return h.WaitlistMax
}
