package repository

import (
	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"gorm.io/gorm"
)

type QuestionFlagRepository interface {
	CreateBatch(flags []model.ExamQuestionFlag) error
	FindByStatus(status string) ([]model.ExamQuestionFlag, error)
	FindByID(id uuid.UUID) (*model.ExamQuestionFlag, error)
	Update(flag *model.ExamQuestionFlag) error
}

type questionFlagRepository struct {
	db *gorm.DB
}

func NewQuestionFlagRepository(db *gorm.DB) QuestionFlagRepository {
	return &questionFlagRepository{db: db}
}

func (r *questionFlagRepository) CreateBatch(flags []model.ExamQuestionFlag) error {
	if len(flags) == 0 {
		return nil
	}
	return r.db.Create(&flags).Error
}

func (r *questionFlagRepository) FindByStatus(status string) ([]model.ExamQuestionFlag, error) {
	var flags []model.ExamQuestionFlag
	query := r.db.Preload("Question").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&flags).Error
	return flags, err
}

func (r *questionFlagRepository) FindByID(id uuid.UUID) (*model.ExamQuestionFlag, error) {
	var flag model.ExamQuestionFlag
	if err := r.db.First(&flag, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &flag, nil
}

func (r *questionFlagRepository) Update(flag *model.ExamQuestionFlag) error {
	return r.db.Save(flag).Error
}
