package repository

import (
	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"gorm.io/gorm"
)

type HalaqahStudentRepository interface {
	Create(student *model.HalaqahStudent) error
	Update(student *model.HalaqahStudent) error
	CountByStatus(halaqahID uuid.UUID, status string) (int64, error)
	FindByHalaqahAndStatus(halaqahID uuid.UUID, status string) ([]model.HalaqahStudent, error)
	// DistinctActiveThalibah lists unique thalibah ids holding an active
	// membership in the halaqah.
	DistinctActiveThalibah(halaqahID uuid.UUID) ([]uuid.UUID, error)
}

type halaqahStudentRepository struct {
	db *gorm.DB
}

func NewHalaqahStudentRepository(db *gorm.DB) HalaqahStudentRepository {
	return &halaqahStudentRepository{db: db}
}

func (r *halaqahStudentRepository) Create(student *model.HalaqahStudent) error {
	return r.db.Create(student).Error
}

func (r *halaqahStudentRepository) Update(student *model.HalaqahStudent) error {
	return r.db.Save(student).Error
}

func (r *halaqahStudentRepository) CountByStatus(halaqahID uuid.UUID, status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.HalaqahStudent{}).
		Where("halaqah_id = ? AND status = ?", halaqahID, status).
		Count(&count).Error
	return count, err
}

func (r *halaqahStudentRepository) FindByHalaqahAndStatus(halaqahID uuid.UUID, status string) ([]model.HalaqahStudent, error) {
	var students []model.HalaqahStudent
	query := r.db.Where("halaqah_id = ? AND status = ?", halaqahID, status)
	if status == model.EnrollmentStatusWaitlist {
		query = query.Order("joined_waitlist_at ASC")
	} else {
		query = query.Order("assigned_at ASC")
	}
	err := query.Find(&students).Error
	return students, err
}

func (r *halaqahStudentRepository) DistinctActiveThalibah(halaqahID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.HalaqahStudent{}).
		Distinct("thalibah_id").
		Where("halaqah_id = ? AND status = ?", halaqahID, model.EnrollmentStatusActive).
		Pluck("thalibah_id", &ids).Error
	return ids, err
}
