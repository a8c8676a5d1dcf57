package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tikrarapp/tikrar-backend/internal/apperr"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/repository"
)

// QuotaService produces the admin occupancy reconciliation report. Confirmed
// occupancy is the union of active memberships and submitted re-enrollments,
// deduplicated per member; there is no stored counter to repair, the report
// is derived on read.
type QuotaService interface {
	Recalculate() (*dto.QuotaRecalcResultDTO, error)
}

type quotaService struct {
	halaqahRepo     repository.HalaqahRepository
	studentRepo     repository.HalaqahStudentRepository
	daftarUlangRepo repository.DaftarUlangRepository
}

func NewQuotaService(
	halaqahRepo repository.HalaqahRepository,
	studentRepo repository.HalaqahStudentRepository,
	daftarUlangRepo repository.DaftarUlangRepository,
) QuotaService {
	return &quotaService{
		halaqahRepo:     halaqahRepo,
		studentRepo:     studentRepo,
		daftarUlangRepo: daftarUlangRepo,
	}
}

func (s *quotaService) Recalculate() (*dto.QuotaRecalcResultDTO, error) {
	ids, err := s.halaqahRepo.FindAllIDs()
	if err != nil {
		return nil, apperr.Store(fmt.Errorf("fetching halaqah list: %w", err))
	}

	results := make([]dto.QuotaRecalcEntryDTO, 0, len(ids))
	for _, id := range ids {
		entry, err := s.recalculateOne(id)
		if err != nil {
			return nil, err
		}
		results = append(results, *entry)
	}

	log.Info().Int("recalculated", len(results)).Msg("Halaqah quota recalculation completed")
	return &dto.QuotaRecalcResultDTO{Recalculated: len(results), Results: results}, nil
}

func (s *quotaService) recalculateOne(halaqahID uuid.UUID) (*dto.QuotaRecalcEntryDTO, error) {
	halaqah, err := s.halaqahRepo.FindByID(halaqahID)
	if err != nil {
		return nil, apperr.Store(fmt.Errorf("fetching halaqah %s: %w", halaqahID, err))
	}

	activeIDs, err := s.studentRepo.DistinctActiveThalibah(halaqahID)
	if err != nil {
		return nil, apperr.Store(fmt.Errorf("counting active members of %s: %w", halaqahID, err))
	}
	confirmedIDs, err := s.daftarUlangRepo.DistinctConfirmedUsers(halaqahID)
	if err != nil {
		return nil, apperr.Store(fmt.Errorf("counting confirmed re-enrollments of %s: %w", halaqahID, err))
	}

	union := make(map[uuid.UUID]struct{}, len(activeIDs)+len(confirmedIDs))
	for _, id := range activeIDs {
		union[id] = struct{}{}
	}
	for _, id := range confirmedIDs {
		union[id] = struct{}{}
	}

	maxStudents := halaqah.EffectiveMaxStudents()
	return &dto.QuotaRecalcEntryDTO{
		HalaqahID:      halaqahID,
		ActiveCount:    len(activeIDs),
		SubmittedCount: len(confirmedIDs),
		TotalCount:     len(union),
		MaxStudents:    maxStudents,
		SpotsAvailable: spotsAvailable(maxStudents, len(union)),
	}, nil
}
