package services

import (
	"context"
	"fmt"
	"time"

	"treinai_backend/internal/ai"
	"treinai_backend/internal/config"
	"treinai_backend/internal/repositories"
	"treinai_backend/internal/services/dto"
	"treinai_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SuggestionService interface {
	// SuggestWorkout asks the model for a list of exercises tailored to
	// the student, optionally focused on one muscle group.
	SuggestWorkout(ctx context.Context, trainerID string, req *dto.SuggestWorkoutRequest) (*dto.SuggestedWorkoutResponse, error)

	// SuggestMealPlan asks the model for a daily calorie and macro split.
	SuggestMealPlan(ctx context.Context, trainerID string, req *dto.SuggestMealPlanRequest) (*dto.SuggestedMealPlanResponse, error)
}

type SuggestionServiceImpl struct {
	db          *gorm.DB
	generator   ai.Generator
	profileRepo repositories.ProfileRepository
	timeout     time.Duration
}

func NewSuggestionService(
	db *gorm.DB,
	generator ai.Generator,
	profileRepo repositories.ProfileRepository,
	aiCfg config.AIConfig,
) SuggestionService {
	return &SuggestionServiceImpl{
		db:          db,
		generator:   generator,
		profileRepo: profileRepo,
		timeout:     time.Duration(aiCfg.TimeoutSeconds) * time.Second,
	}
}

func (s *SuggestionServiceImpl) SuggestWorkout(ctx context.Context, trainerID string, req *dto.SuggestWorkoutRequest) (*dto.SuggestedWorkoutResponse, error) {
	info, err := s.studentInfo(ctx, trainerID, req.StudentID)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	suggestions, err := s.generator.GenerateWorkoutSuggestions(genCtx, info, req.MuscleGroup)
	if err != nil {
		return nil, asGenerationError(err)
	}

	resp := &dto.SuggestedWorkoutResponse{
		Exercises: make([]dto.SuggestedExercise, 0, len(suggestions)),
	}
	for _, sg := range suggestions {
		resp.Exercises = append(resp.Exercises, dto.SuggestedExercise{
			Name:        sg.Name,
			Category:    sg.Category,
			Sets:        defaultSets(sg.Sets),
			Reps:        defaultReps(sg.Reps),
			RestSeconds: defaultRest(sg.Rest),
		})
	}
	return resp, nil
}

func (s *SuggestionServiceImpl) SuggestMealPlan(ctx context.Context, trainerID string, req *dto.SuggestMealPlanRequest) (*dto.SuggestedMealPlanResponse, error) {
	info, err := s.studentInfo(ctx, trainerID, req.StudentID)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	macros, err := s.generator.GenerateMacroTargets(genCtx, info)
	if err != nil {
		return nil, asGenerationError(err)
	}

	return &dto.SuggestedMealPlanResponse{
		Calories: macros.Calories,
		Protein:  macros.Protein,
		Carbs:    macros.Carbs,
		Fat:      macros.Fat,
	}, nil
}

// studentInfo builds the profile summary fed into the prompt, enforcing
// roster ownership on the way.
func (s *SuggestionServiceImpl) studentInfo(ctx context.Context, trainerID, studentID string) (string, error) {
	row, err := s.profileRepo.FindStudentOfTrainer(s.db.WithContext(ctx), trainerID, studentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return "", apperrors.ErrNotRosterMember
		}
		return "", apperrors.InternalError(err)
	}

	return fmt.Sprintf(
		"Nome: %s, Objetivo: %s, Peso: %.1f kg, Altura: %.2f m",
		row.FullName, row.Goal, row.Weight, row.Height,
	), nil
}

func asGenerationError(err error) error {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr
	}
	return apperrors.ErrGenerationFailed
}
