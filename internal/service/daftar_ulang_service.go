package service

import (
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tikrarapp/tikrar-backend/internal/apperr"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"github.com/tikrarapp/tikrar-backend/internal/repository"
	"gorm.io/gorm"
)

type DaftarUlangService interface {
	Submit(principal model.Principal, req dto.DaftarUlangSubmitDTO) (*dto.DaftarUlangDTO, error)
}

type daftarUlangService struct {
	submissionRepo repository.DaftarUlangRepository
}

func NewDaftarUlangService(submissionRepo repository.DaftarUlangRepository) DaftarUlangService {
	return &daftarUlangService{submissionRepo: submissionRepo}
}

// Submit moves the caller's draft to submitted, recording the confirmed
// halaqah choices. From that point the submission occupies a slot in quota
// recalculation. Without an existing draft a fresh submission is created.
func (s *daftarUlangService) Submit(principal model.Principal, req dto.DaftarUlangSubmitDTO) (*dto.DaftarUlangDTO, error) {
	if req.UjianHalaqahID == nil && req.TashihHalaqahID == nil {
		return nil, apperr.New(apperr.KindValidation, "Pilih minimal satu halaqah ujian atau tashih")
	}

	now := time.Now()
	submission, err := s.submissionRepo.FindLatestByUser(principal.UserID)
	switch {
	case err == nil:
		if submission.Status != model.SubmissionStatusDraft {
			return nil, apperr.New(apperr.KindAlreadySubmitted, "Daftar ulang sudah pernah dikumpulkan").
				WithDetails(toDaftarUlangDTO(submission))
		}
		submission.UjianHalaqahID = req.UjianHalaqahID
		submission.TashihHalaqahID = req.TashihHalaqahID
		submission.Status = model.SubmissionStatusSubmitted
		submission.SubmittedAt = &now
		if err := s.submissionRepo.Update(submission); err != nil {
			return nil, apperr.Store(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission = &model.DaftarUlangSubmission{
			UserID:          principal.UserID,
			UjianHalaqahID:  req.UjianHalaqahID,
			TashihHalaqahID: req.TashihHalaqahID,
			Status:          model.SubmissionStatusSubmitted,
			SubmittedAt:     &now,
		}
		if err := s.submissionRepo.Create(submission); err != nil {
			return nil, apperr.Store(err)
		}
	default:
		return nil, apperr.Store(err)
	}

	log.Info().
		Str("submission_id", submission.ID.String()).
		Str("user_id", principal.UserID.String()).
		Msg("Daftar ulang submitted")
	return toDaftarUlangDTO(submission), nil
}

func toDaftarUlangDTO(submission *model.DaftarUlangSubmission) *dto.DaftarUlangDTO {
	var out dto.DaftarUlangDTO
	copier.Copy(&out, submission)
	return &out
}
