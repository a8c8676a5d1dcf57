package dto

import "github.com/google/uuid"

// HalaqahCreateDTO is the admin create-halaqah body.
type HalaqahCreateDTO struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	MuallimahID  *uuid.UUID `json:"muallimah_id"`
	DayOfWeek    int        `json:"day_of_week" binding:"min=0,max=6"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	Location     string     `json:"location"`
	ZoomLink     string     `json:"zoom_link"`
	PreferredJuz string     `json:"preferred_juz"`
	MaxStudents  int        `json:"max_students" binding:"omitempty,min=1"`
	WaitlistMax  int        `json:"waitlist_max" binding:"omitempty,min=0"`
}

// HalaqahUpdateDTO is a partial update: only non-nil fields are applied.
type HalaqahUpdateDTO struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	MuallimahID  *uuid.UUID `json:"muallimah_id"`
	DayOfWeek    *int       `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartTime    *string    `json:"start_time"`
	EndTime      *string    `json:"end_time"`
	Location     *string    `json:"location"`
	ZoomLink     *string    `json:"zoom_link"`
	PreferredJuz *string    `json:"preferred_juz"`
	MaxStudents  *int       `json:"max_students" binding:"omitempty,min=1"`
	WaitlistMax  *int       `json:"waitlist_max" binding:"omitempty,min=0"`
	Status       *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// PromoteWaitlistDTO names the membership record to promote.
type PromoteWaitlistDTO struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
}

// QuotaRecalcEntryDTO is one halaqah's reconciliation row. Key casing
// follows the admin report consumers.
type QuotaRecalcEntryDTO struct {
	HalaqahID      uuid.UUID `json:"halaqahId"`
	ActiveCount    int       `json:"activeCount"`
	SubmittedCount int       `json:"submittedCount"`
	TotalCount     int       `json:"totalCount"`
	MaxStudents    int       `json:"maxStudents"`
	SpotsAvailable int       `json:"spotsAvailable"`
}

// QuotaRecalcResultDTO is the full reconciliation report. It mutates
// nothing; occupancy is always derived on read.
type QuotaRecalcResultDTO struct {
	Recalculated int                   `json:"recalculated"`
	Results      []QuotaRecalcEntryDTO `json:"results"`
}
