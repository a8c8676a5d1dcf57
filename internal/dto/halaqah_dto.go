package dto

import (
	"time"

	"github.com/google/uuid"
)

// JoinHalaqahDTO is the join request body. ThalibahID identifies the member
// joining; admins may join a thalibah other than themselves.
type JoinHalaqahDTO struct {
	ThalibahID     uuid.UUID `json:"thalibah_id" binding:"required"`
	EnrollmentType string    `json:"enrollment_type" binding:"omitempty,oneof=new re_enrollment"`
}

// HalaqahSummaryDTO is the halaqah shape embedded in join/list responses.
type HalaqahSummaryDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DayOfWeek    int       `json:"day_of_week"`
	StartTime    string    `json:"start_time,omitempty"`
	EndTime      string    `json:"end_time,omitempty"`
	Location     string    `json:"location,omitempty"`
	PreferredJuz string    `json:"preferred_juz,omitempty"`
	MaxStudents  int       `json:"max_students"`
	Status       string    `json:"status"`
}

// JoinResultDTO reports the outcome of a join request. Position is only set
// for waitlisted members (1-indexed, FIFO).
type JoinResultDTO struct {
	Status   string            `json:"status"`
	Position *int              `json:"position,omitempty"`
	Halaqah  HalaqahSummaryDTO `json:"halaqah"`
}

// CapacityFullDTO is the body returned when both roster and waitlist are full.
type CapacityFullDTO struct {
	Error           string `json:"error"`
	Status          string `json:"status"`
	CurrentActive   int    `json:"current_active"`
	MaxCapacity     int    `json:"max_capacity"`
	CurrentWaitlist int    `json:"current_waitlist"`
	MaxWaitlist     int    `json:"max_waitlist"`
}

// OccupancyDTO reflects current occupancy using the same counting rule as
// the join path.
type OccupancyDTO struct {
	ActiveStudents   int  `json:"active_students"`
	WaitlistStudents int  `json:"waitlist_students"`
	MaxStudents      int  `json:"max_students"`
	SpotsAvailable   int  `json:"spots_available"`
	IsFull           bool `json:"is_full"`
}

// LeaveHalaqahDTO is the leave request body.
type LeaveHalaqahDTO struct {
	ThalibahID uuid.UUID `json:"thalibah_id" binding:"required"`
}

// LeaveResultDTO reports a leave plus the waitlist member promoted into the
// freed slot, if any.
type LeaveResultDTO struct {
	Status   string             `json:"status"`
	Promoted *HalaqahStudentDTO `json:"promoted,omitempty"`
}

// HalaqahStudentDTO is one roster/waitlist entry.
type HalaqahStudentDTO struct {
	ID               uuid.UUID  `json:"id"`
	HalaqahID        uuid.UUID  `json:"halaqah_id"`
	ThalibahID       uuid.UUID  `json:"thalibah_id"`
	Status           string     `json:"status"`
	EnrollmentType   string     `json:"enrollment_type"`
	AssignedAt       time.Time  `json:"assigned_at"`
	JoinedWaitlistAt *time.Time `json:"joined_waitlist_at,omitempty"`
}

// HalaqahStudentsDTO groups a halaqah's members by status.
type HalaqahStudentsDTO struct {
	Active   []HalaqahStudentDTO `json:"active"`
	Waitlist []HalaqahStudentDTO `json:"waitlist"`
}
