package repository

import (
	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"gorm.io/gorm"
)

type DaftarUlangRepository interface {
	FindLatestByUser(userID uuid.UUID) (*model.DaftarUlangSubmission, error)
	Create(submission *model.DaftarUlangSubmission) error
	Update(submission *model.DaftarUlangSubmission) error
	// DistinctConfirmedUsers lists unique user ids with a submitted or
	// approved submission pointing at the halaqah (as either ujian or
	// tashih choice). Drafts never occupy a slot.
	DistinctConfirmedUsers(halaqahID uuid.UUID) ([]uuid.UUID, error)
}

type daftarUlangRepository struct {
	db *gorm.DB
}

func NewDaftarUlangRepository(db *gorm.DB) DaftarUlangRepository {
	return &daftarUlangRepository{db: db}
}

func (r *daftarUlangRepository) FindLatestByUser(userID uuid.UUID) (*model.DaftarUlangSubmission, error) {
	var submission model.DaftarUlangSubmission
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *daftarUlangRepository) Create(submission *model.DaftarUlangSubmission) error {
	return r.db.Create(submission).Error
}

func (r *daftarUlangRepository) Update(submission *model.DaftarUlangSubmission) error {
	return r.db.Save(submission).Error
}

func (r *daftarUlangRepository) DistinctConfirmedUsers(halaqahID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.DaftarUlangSubmission{}).
		Distinct("user_id").
		Where("status IN ?", []string{model.SubmissionStatusSubmitted, model.SubmissionStatusApproved}).
		Where("ujian_halaqah_id = ? OR tashih_halaqah_id = ?", halaqahID, halaqahID).
		Pluck("user_id", &ids).Error
	return ids, err
}
