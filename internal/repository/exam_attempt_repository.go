package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExamAttemptRepository interface {
	Create(attempt *model.ExamAttempt) error
	FindByIDAndUser(id, userID uuid.UUID) (*model.ExamAttempt, error)
	FindSubmitted(userID, registrationID uuid.UUID, juzNumber int) (*model.ExamAttempt, error)
	FindInProgress(userID, registrationID uuid.UUID, juzNumber int) (*model.ExamAttempt, error)
	CountSubmitted(userID, registrationID uuid.UUID) (int64, error)
	FindAllByUser(userID uuid.UUID) ([]model.ExamAttempt, error)
	// MarkSubmitted performs the one-way in_progress -> submitted transition
	// as a single conditional update. It reports false when the attempt was
	// no longer in_progress, so a concurrent double submit loses cleanly.
	MarkSubmitted(id uuid.UUID, answers datatypes.JSONSlice[model.AnswerRecord], correctAnswers, score int, submittedAt time.Time) (bool, error)
}

type examAttemptRepository struct {
	db *gorm.DB
}

func NewExamAttemptRepository(db *gorm.DB) ExamAttemptRepository {
	return &examAttemptRepository{db: db}
}

func (r *examAttemptRepository) Create(attempt *model.ExamAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *examAttemptRepository) FindByIDAndUser(id, userID uuid.UUID) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *examAttemptRepository) findByTriple(userID, registrationID uuid.UUID, juzNumber int, status string) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.db.
		Where("user_id = ? AND registration_id = ? AND juz_number = ? AND status = ?",
			userID, registrationID, juzNumber, status).
		Order("created_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *examAttemptRepository) FindSubmitted(userID, registrationID uuid.UUID, juzNumber int) (*model.ExamAttempt, error) {
	return r.findByTriple(userID, registrationID, juzNumber, model.AttemptStatusSubmitted)
}

func (r *examAttemptRepository) FindInProgress(userID, registrationID uuid.UUID, juzNumber int) (*model.ExamAttempt, error) {
	return r.findByTriple(userID, registrationID, juzNumber, model.AttemptStatusInProgress)
}

func (r *examAttemptRepository) CountSubmitted(userID, registrationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.ExamAttempt{}).
		Where("user_id = ? AND registration_id = ? AND status = ?",
			userID, registrationID, model.AttemptStatusSubmitted).
		Count(&count).Error
	return count, err
}

func (r *examAttemptRepository) FindAllByUser(userID uuid.UUID) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *examAttemptRepository) MarkSubmitted(id uuid.UUID, answers datatypes.JSONSlice[model.AnswerRecord], correctAnswers, score int, submittedAt time.Time) (bool, error) {
	result := r.db.Model(&model.ExamAttempt{}).
		Where("id = ? AND status = ?", id, model.AttemptStatusInProgress).
		Updates(map[string]interface{}{
			"answers":         answers,
			"correct_answers": correctAnswers,
			"score":           score,
			"status":          model.AttemptStatusSubmitted,
			"submitted_at":    submittedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
