package repositories

import (
	"errors"

	"treinai_backend/internal/models"

	"gorm.io/gorm"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type WorkoutRepository interface {
	// Create persists the workout together with its exercises.
	Create(db *gorm.DB, workout *models.Workout) error

	FindByID(db *gorm.DB, id string) (*models.Workout, error)
	FindByStudentID(db *gorm.DB, studentID string) ([]models.Workout, error)
	Delete(db *gorm.DB, id string) error

	// DeleteByStudentID wipes every workout of a student. Used by the
	// replace-style save, always inside the same transaction as Create.
	DeleteByStudentID(db *gorm.DB, studentID string) error
}

type workoutRepository struct{}

func NewWorkoutRepository() WorkoutRepository {
	return &workoutRepository{}
}

func (r *workoutRepository) Create(db *gorm.DB, workout *models.Workout) error {
	return db.Create(workout).Error
}

func (r *workoutRepository) FindByID(db *gorm.DB, id string) (*models.Workout, error) {
	var workout models.Workout
	err := db.Preload("Exercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&workout, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *workoutRepository) FindByStudentID(db *gorm.DB, studentID string) ([]models.Workout, error) {
	var workouts []models.Workout
	err := db.Preload("Exercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&workouts).Error
	return workouts, err
}

func (r *workoutRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Workout{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *workoutRepository) DeleteByStudentID(db *gorm.DB, studentID string) error {
	return db.Where("student_id = ?", studentID).Delete(&models.Workout{}).Error
}
