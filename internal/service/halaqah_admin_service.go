package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tikrarapp/tikrar-backend/internal/apperr"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"github.com/tikrarapp/tikrar-backend/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HalaqahAdminService covers administrator mutations of halaqah records and
// manual waitlist promotion.
type HalaqahAdminService interface {
	Create(req dto.HalaqahCreateDTO) (*dto.HalaqahSummaryDTO, error)
	Update(halaqahID uuid.UUID, req dto.HalaqahUpdateDTO) (*dto.HalaqahSummaryDTO, error)
	PromoteWaitlist(halaqahID uuid.UUID, req dto.PromoteWaitlistDTO) (*dto.HalaqahStudentDTO, error)
}

type halaqahAdminService struct {
	halaqahRepo repository.HalaqahRepository
	studentRepo repository.HalaqahStudentRepository
	db          *gorm.DB
}

func NewHalaqahAdminService(
	halaqahRepo repository.HalaqahRepository,
	studentRepo repository.HalaqahStudentRepository,
	db *gorm.DB,
) HalaqahAdminService {
	return &halaqahAdminService{halaqahRepo: halaqahRepo, studentRepo: studentRepo, db: db}
}

func (s *halaqahAdminService) Create(req dto.HalaqahCreateDTO) (*dto.HalaqahSummaryDTO, error) {
	halaqah := model.Halaqah{
		Name:         req.Name,
		Description:  req.Description,
		MuallimahID:  req.MuallimahID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Location:     req.Location,
		ZoomLink:     req.ZoomLink,
		PreferredJuz: req.PreferredJuz,
		MaxStudents:  req.MaxStudents,
		WaitlistMax:  req.WaitlistMax,
		Status:       model.HalaqahStatusActive,
	}
	if halaqah.MaxStudents <= 0 {
		halaqah.MaxStudents = model.DefaultMaxStudents
	}
	if halaqah.WaitlistMax < 0 {
		halaqah.WaitlistMax = model.DefaultWaitlistMax
	}

	if err := s.halaqahRepo.Create(&halaqah); err != nil {
		return nil, apperr.Store(err)
	}
	log.Info().Str("halaqah_id", halaqah.ID.String()).Str("name", halaqah.Name).Msg("Halaqah created")

	summary := halaqahSummary(&halaqah)
	return &summary, nil
}

// Update applies a partial update: only fields present in the request body
// are touched.
func (s *halaqahAdminService) Update(halaqahID uuid.UUID, req dto.HalaqahUpdateDTO) (*dto.HalaqahSummaryDTO, error) {
	halaqah, err := s.halaqahRepo.FindByID(halaqahID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Halaqah tidak ditemukan")
		}
		return nil, apperr.Store(err)
	}

	if req.Name != nil {
		halaqah.Name = *req.Name
	}
	if req.Description != nil {
		halaqah.Description = *req.Description
	}
	if req.MuallimahID != nil {
		halaqah.MuallimahID = req.MuallimahID
	}
	if req.DayOfWeek != nil {
		halaqah.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		halaqah.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		halaqah.EndTime = *req.EndTime
	}
	if req.Location != nil {
		halaqah.Location = *req.Location
	}
	if req.ZoomLink != nil {
		halaqah.ZoomLink = *req.ZoomLink
	}
	if req.PreferredJuz != nil {
		halaqah.PreferredJuz = *req.PreferredJuz
	}
	if req.MaxStudents != nil {
		halaqah.MaxStudents = *req.MaxStudents
	}
	if req.WaitlistMax != nil {
		halaqah.WaitlistMax = *req.WaitlistMax
	}
	if req.Status != nil {
		halaqah.Status = *req.Status
	}

	if err := s.halaqahRepo.Update(halaqah); err != nil {
		return nil, apperr.Store(err)
	}

	summary := halaqahSummary(halaqah)
	return &summary, nil
}

// PromoteWaitlist moves one named waitlist member to active, re-checking
// capacity under the halaqah row lock.
func (s *halaqahAdminService) PromoteWaitlist(halaqahID uuid.UUID, req dto.PromoteWaitlistDTO) (*dto.HalaqahStudentDTO, error) {
	var promoted dto.HalaqahStudentDTO
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var halaqah model.Halaqah
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&halaqah, "id = ?", halaqahID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "Halaqah tidak ditemukan")
			}
			return apperr.Store(err)
		}

		var enrollment model.HalaqahStudent
		if err := tx.First(&enrollment, "id = ?", req.StudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "Data keanggotaan tidak ditemukan")
			}
			return apperr.Store(err)
		}
		if enrollment.HalaqahID != halaqahID {
			return apperr.New(apperr.KindValidation, "Thalibah tidak terdaftar di halaqah ini")
		}
		if enrollment.Status != model.EnrollmentStatusWaitlist {
			return apperr.New(apperr.KindValidation, "Thalibah tidak berada di waitlist")
		}

		var activeCount int64
		if err := tx.Model(&model.HalaqahStudent{}).
			Where("halaqah_id = ? AND status = ?", halaqahID, model.EnrollmentStatusActive).
			Count(&activeCount).Error; err != nil {
			return apperr.Store(err)
		}
		if int(activeCount) >= halaqah.EffectiveMaxStudents() {
			return apperr.New(apperr.KindCapacityExceeded, "Halaqah masih penuh, tidak dapat mempromosikan dari waitlist")
		}

		enrollment.Status = model.EnrollmentStatusActive
		enrollment.JoinedWaitlistAt = nil
		enrollment.AssignedAt = time.Now()
		if err := tx.Save(&enrollment).Error; err != nil {
			return apperr.Store(err)
		}

		promoted = toStudentDTO(&enrollment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("halaqah_id", halaqahID.String()).
		Str("student_id", req.StudentID.String()).
		Msg("Waitlist member promoted by admin")
	return &promoted, nil
}
