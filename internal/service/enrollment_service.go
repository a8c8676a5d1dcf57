package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tikrarapp/tikrar-backend/internal/apperr"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"github.com/tikrarapp/tikrar-backend/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollmentService is the halaqah capacity allocator: it decides join
// requests against the active roster and the bounded waitlist, handles
// leaves with FIFO promotion, and exposes occupancy.
type EnrollmentService interface {
	RequestJoin(principal model.Principal, halaqahID uuid.UUID, req dto.JoinHalaqahDTO) (*dto.JoinResultDTO, error)
	Leave(principal model.Principal, halaqahID uuid.UUID, req dto.LeaveHalaqahDTO) (*dto.LeaveResultDTO, error)
	GetOccupancy(halaqahID uuid.UUID) (*dto.OccupancyDTO, error)
	ListStudents(principal model.Principal, halaqahID uuid.UUID) (*dto.HalaqahStudentsDTO, error)
	ListActive() ([]dto.HalaqahSummaryDTO, error)
}

type enrollmentService struct {
	halaqahRepo repository.HalaqahRepository
	studentRepo repository.HalaqahStudentRepository
	db          *gorm.DB // join/leave run as locked transactions
}

func NewEnrollmentService(
	halaqahRepo repository.HalaqahRepository,
	studentRepo repository.HalaqahStudentRepository,
	db *gorm.DB,
) EnrollmentService {
	return &enrollmentService{halaqahRepo: halaqahRepo, studentRepo: studentRepo, db: db}
}

// RequestJoin admits the thalibah to the active roster, queues her on the
// waitlist, or rejects when both are full. The halaqah row is locked for the
// whole count-check-insert sequence so concurrent joins cannot over-admit.
func (s *enrollmentService) RequestJoin(principal model.Principal, halaqahID uuid.UUID, req dto.JoinHalaqahDTO) (*dto.JoinResultDTO, error) {
	if !principal.IsAdmin() && req.ThalibahID != principal.UserID {
		return nil, apperr.New(apperr.KindForbidden, "Tidak dapat mendaftarkan thalibah lain")
	}

	enrollmentType := req.EnrollmentType
	if enrollmentType == "" {
		enrollmentType = model.EnrollmentTypeReEnrollment
	}

	var result dto.JoinResultDTO
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var halaqah model.Halaqah
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&halaqah, "id = ?", halaqahID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "Halaqah tidak ditemukan")
			}
			return apperr.Store(err)
		}

		var activeCount int64
		if err := tx.Model(&model.HalaqahStudent{}).
			Where("halaqah_id = ? AND status = ?", halaqahID, model.EnrollmentStatusActive).
			Count(&activeCount).Error; err != nil {
			return apperr.Store(err)
		}
		var waitlist []model.HalaqahStudent
		if err := tx.Where("halaqah_id = ? AND status = ?", halaqahID, model.EnrollmentStatusWaitlist).
			Find(&waitlist).Error; err != nil {
			return apperr.Store(err)
		}
		waitlistCount := len(waitlist)

		// Idempotency guards: one non-dropped record per (halaqah, thalibah).
		var existing model.HalaqahStudent
		err := tx.Where("halaqah_id = ? AND thalibah_id = ? AND status <> ?",
			halaqahID, req.ThalibahID, model.EnrollmentStatusDropped).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Store(err)
		}
		if err == nil {
			switch outcome, _ := resolveMembership(&existing); outcome {
			case outcomeAlreadyActive:
				return apperr.New(apperr.KindAlreadyActive, "Sudah terdaftar aktif di halaqah ini")
			case outcomeAlreadyWaitlisted:
				position := fifoPosition(&existing, waitlist)
				result = dto.JoinResultDTO{
					Status:   "waitlisted",
					Position: &position,
					Halaqah:  halaqahSummary(&halaqah),
				}
				return nil
			}
		}

		maxStudents := halaqah.EffectiveMaxStudents()
		waitlistMax := halaqah.EffectiveWaitlistMax()
		now := time.Now()

		switch decideJoin(int(activeCount), waitlistCount, maxStudents, waitlistMax) {
		case outcomeJoined:
			student := model.HalaqahStudent{
				HalaqahID:      halaqahID,
				ThalibahID:     req.ThalibahID,
				Status:         model.EnrollmentStatusActive,
				EnrollmentType: enrollmentType,
				AssignedAt:     now,
			}
			if err := tx.Create(&student).Error; err != nil {
				return apperr.Store(err)
			}
			result = dto.JoinResultDTO{Status: "joined", Halaqah: halaqahSummary(&halaqah)}
			return nil

		case outcomeWaitlisted:
			student := model.HalaqahStudent{
				HalaqahID:        halaqahID,
				ThalibahID:       req.ThalibahID,
				Status:           model.EnrollmentStatusWaitlist,
				EnrollmentType:   enrollmentType,
				AssignedAt:       now,
				JoinedWaitlistAt: &now,
			}
			if err := tx.Create(&student).Error; err != nil {
				return apperr.Store(err)
			}
			position := waitlistPosition(waitlistCount)
			result = dto.JoinResultDTO{
				Status:   "waitlisted",
				Position: &position,
				Halaqah:  halaqahSummary(&halaqah),
			}
			return nil

		default:
			return apperr.New(apperr.KindCapacityExceeded, "Halaqah penuh dan waitlist sudah mencapai batas maksimal").
				WithDetails(dto.CapacityFullDTO{
					Error:           "Halaqah penuh dan waitlist sudah mencapai batas maksimal",
					Status:          "error",
					CurrentActive:   int(activeCount),
					MaxCapacity:     maxStudents,
					CurrentWaitlist: waitlistCount,
					MaxWaitlist:     waitlistMax,
				})
		}
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("halaqah_id", halaqahID.String()).
		Str("thalibah_id", req.ThalibahID.String()).
		Str("status", result.Status).
		Msg("Join request resolved")
	return &result, nil
}

// Leave drops the membership and promotes the FIFO head of the waitlist
// into the freed slot within the same transaction.
func (s *enrollmentService) Leave(principal model.Principal, halaqahID uuid.UUID, req dto.LeaveHalaqahDTO) (*dto.LeaveResultDTO, error) {
	if !principal.IsAdmin() && req.ThalibahID != principal.UserID {
		return nil, apperr.New(apperr.KindForbidden, "Tidak dapat mengeluarkan thalibah lain")
	}

	var result dto.LeaveResultDTO
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&model.Halaqah{}, "id = ?", halaqahID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "Halaqah tidak ditemukan")
			}
			return apperr.Store(err)
		}

		var enrollment model.HalaqahStudent
		err := tx.Where("halaqah_id = ? AND thalibah_id = ? AND status <> ?",
			halaqahID, req.ThalibahID, model.EnrollmentStatusDropped).
			First(&enrollment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "Data keanggotaan tidak ditemukan")
			}
			return apperr.Store(err)
		}

		wasActive := enrollment.Status == model.EnrollmentStatusActive
		enrollment.Status = model.EnrollmentStatusDropped
		if err := tx.Save(&enrollment).Error; err != nil {
			return apperr.Store(err)
		}
		result = dto.LeaveResultDTO{Status: "left"}

		// A freed waitlist slot promotes nobody; only an active slot does.
		if !wasActive {
			return nil
		}

		var waitlist []model.HalaqahStudent
		if err := tx.Where("halaqah_id = ? AND status = ?", halaqahID, model.EnrollmentStatusWaitlist).
			Find(&waitlist).Error; err != nil {
			return apperr.Store(err)
		}
		head := promotionHead(waitlist)
		if head == nil {
			return nil
		}

		head.Status = model.EnrollmentStatusActive
		head.JoinedWaitlistAt = nil
		head.AssignedAt = time.Now()
		if err := tx.Save(head).Error; err != nil {
			return apperr.Store(err)
		}

		promoted := toStudentDTO(head)
		result.Promoted = &promoted
		log.Info().
			Str("halaqah_id", halaqahID.String()).
			Str("promoted_thalibah_id", head.ThalibahID.String()).
			Msg("Waitlist head promoted after leave")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOccupancy is a pure read sharing the join path's counting rule.
func (s *enrollmentService) GetOccupancy(halaqahID uuid.UUID) (*dto.OccupancyDTO, error) {
	halaqah, err := s.halaqahRepo.FindByID(halaqahID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Halaqah tidak ditemukan")
		}
		return nil, apperr.Store(err)
	}

	activeCount, err := s.studentRepo.CountByStatus(halaqahID, model.EnrollmentStatusActive)
	if err != nil {
		return nil, apperr.Store(err)
	}
	waitlistCount, err := s.studentRepo.CountByStatus(halaqahID, model.EnrollmentStatusWaitlist)
	if err != nil {
		return nil, apperr.Store(err)
	}

	maxStudents := halaqah.EffectiveMaxStudents()
	return &dto.OccupancyDTO{
		ActiveStudents:   int(activeCount),
		WaitlistStudents: int(waitlistCount),
		MaxStudents:      maxStudents,
		SpotsAvailable:   spotsAvailable(maxStudents, int(activeCount)),
		IsFull:           int(activeCount) >= maxStudents,
	}, nil
}

func (s *enrollmentService) ListStudents(principal model.Principal, halaqahID uuid.UUID) (*dto.HalaqahStudentsDTO, error) {
	halaqah, err := s.halaqahRepo.FindByID(halaqahID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Halaqah tidak ditemukan")
		}
		return nil, apperr.Store(err)
	}
	isMuallimah := halaqah.MuallimahID != nil && *halaqah.MuallimahID == principal.UserID
	if !principal.IsAdmin() && !isMuallimah {
		return nil, apperr.New(apperr.KindForbidden, "Hanya muallimah halaqah atau admin yang dapat melihat daftar thalibah")
	}

	active, err := s.studentRepo.FindByHalaqahAndStatus(halaqahID, model.EnrollmentStatusActive)
	if err != nil {
		return nil, apperr.Store(err)
	}
	waitlist, err := s.studentRepo.FindByHalaqahAndStatus(halaqahID, model.EnrollmentStatusWaitlist)
	if err != nil {
		return nil, apperr.Store(err)
	}

	out := dto.HalaqahStudentsDTO{
		Active:   make([]dto.HalaqahStudentDTO, 0, len(active)),
		Waitlist: make([]dto.HalaqahStudentDTO, 0, len(waitlist)),
	}
	for i := range active {
		out.Active = append(out.Active, toStudentDTO(&active[i]))
	}
	for i := range waitlist {
		out.Waitlist = append(out.Waitlist, toStudentDTO(&waitlist[i]))
	}
	return &out, nil
}

func (s *enrollmentService) ListActive() ([]dto.HalaqahSummaryDTO, error) {
	halaqahs, err := s.halaqahRepo.FindAllActive()
	if err != nil {
		return nil, apperr.Store(err)
	}
	summaries := make([]dto.HalaqahSummaryDTO, 0, len(halaqahs))
	for i := range halaqahs {
		summaries = append(summaries, halaqahSummary(&halaqahs[i]))
	}
	return summaries, nil
}

func halaqahSummary(halaqah *model.Halaqah) dto.HalaqahSummaryDTO {
	var summary dto.HalaqahSummaryDTO
	copier.Copy(&summary, halaqah)
	summary.MaxStudents = halaqah.EffectiveMaxStudents()
	return summary
}

func toStudentDTO(student *model.HalaqahStudent) dto.HalaqahStudentDTO {
	var out dto.HalaqahStudentDTO
	copier.Copy(&out, student)
	return out
}
