package services

import (
	"context"

	"treinai_backend/internal/models"
	"treinai_backend/internal/repositories"
	"treinai_backend/internal/services/dto"
	"treinai_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type WorkoutService interface {
	// SaveProgram replaces the student's entire workout program in one
	// transaction. Either every workout lands or none does; there is no
	// partially saved program to confuse the student's dashboard.
	SaveProgram(ctx context.Context, trainerID, studentID string, req *dto.SaveWorkoutsRequest) (*dto.WorkoutListResponse, error)

	// ListProgram is readable by the owning trainer and the student.
	ListProgram(ctx context.Context, requesterID string, requesterRole models.AccountRole, studentID string) (*dto.WorkoutListResponse, error)
}

type WorkoutServiceImpl struct {
	db          *gorm.DB
	workoutRepo repositories.WorkoutRepository
	profileRepo repositories.ProfileRepository
}

func NewWorkoutService(
	db *gorm.DB,
	workoutRepo repositories.WorkoutRepository,
	profileRepo repositories.ProfileRepository,
) WorkoutService {
	return &WorkoutServiceImpl{
		db:          db,
		workoutRepo: workoutRepo,
		profileRepo: profileRepo,
	}
}

func (s *WorkoutServiceImpl) SaveProgram(ctx context.Context, trainerID, studentID string, req *dto.SaveWorkoutsRequest) (*dto.WorkoutListResponse, error) {
	if err := ensureStudentAccess(ctx, s.db, s.profileRepo, trainerID, models.AccountRoleTrainer, studentID); err != nil {
		return nil, err
	}

	workouts := make([]*models.Workout, 0, len(req.Workouts))
	for _, in := range req.Workouts {
		workout := &models.Workout{
			StudentID: studentID,
			TrainerID: trainerID,
			Name:      in.Name,
			Focus:     in.Focus,
		}
		for idx, ex := range in.Exercises {
			workout.Exercises = append(workout.Exercises, models.WorkoutExercise{
				ExerciseName: ex.Name,
				Category:     ex.Category,
				Sets:         defaultSets(ex.Sets),
				Reps:         defaultReps(ex.Reps),
				Weight:       ex.Weight,
				RestSeconds:  defaultRest(ex.RestSeconds),
				OrderIndex:   idx,
				VideoURL:     ex.VideoURL,
			})
		}
		workouts = append(workouts, workout)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.workoutRepo.DeleteByStudentID(tx, studentID); err != nil {
			return err
		}
		for _, workout := range workouts {
			if err := s.workoutRepo.Create(tx, workout); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildWorkoutListResponse(workouts), nil
}

func (s *WorkoutServiceImpl) ListProgram(ctx context.Context, requesterID string, requesterRole models.AccountRole, studentID string) (*dto.WorkoutListResponse, error) {
	if err := ensureStudentAccess(ctx, s.db, s.profileRepo, requesterID, requesterRole, studentID); err != nil {
		return nil, err
	}

	workouts, err := s.workoutRepo.FindByStudentID(s.db.WithContext(ctx), studentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refs := make([]*models.Workout, len(workouts))
	for i := range workouts {
		refs[i] = &workouts[i]
	}
	return buildWorkoutListResponse(refs), nil
}

// Editor fields left blank fall back to the house defaults.

func defaultSets(sets int) int {
	if sets <= 0 {
		return 3
	}
	return sets
}

func defaultReps(reps string) string {
	if reps == "" {
		return "12"
	}
	return reps
}

func defaultRest(rest int) int {
	if rest <= 0 {
		return 60
	}
	return rest
}

func buildWorkoutListResponse(workouts []*models.Workout) *dto.WorkoutListResponse {
	resp := &dto.WorkoutListResponse{Workouts: make([]dto.WorkoutResponse, 0, len(workouts))}
	for _, w := range workouts {
		wr := dto.WorkoutResponse{
			ID:        w.ID,
			Name:      w.Name,
			Focus:     w.Focus,
			Exercises: make([]dto.ExerciseResponse, 0, len(w.Exercises)),
		}
		for _, ex := range w.Exercises {
			wr.Exercises = append(wr.Exercises, dto.ExerciseResponse{
				ID:          ex.ID,
				Name:        ex.ExerciseName,
				Category:    ex.Category,
				Sets:        ex.Sets,
				Reps:        ex.Reps,
				Weight:      ex.Weight,
				RestSeconds: ex.RestSeconds,
				VideoURL:    ex.VideoURL,
			})
		}
		resp.Workouts = append(resp.Workouts, wr)
	}
	return resp
}
