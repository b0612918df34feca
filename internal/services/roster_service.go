package services

import (
	"context"

	"treinai_backend/internal/auth"
	"treinai_backend/internal/config"
	"treinai_backend/internal/email"
	"treinai_backend/internal/logger"
	"treinai_backend/internal/models"
	"treinai_backend/internal/repositories"
	"treinai_backend/internal/services/dto"
	"treinai_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type RosterService interface {
	// ListStudents returns the trainer's active students sorted by name.
	ListStudents(ctx context.Context, trainerID string) (*dto.RosterResponse, error)

	// AddStudent creates a student account owned by the trainer, subject
	// to the plan's student limit.
	AddStudent(ctx context.Context, trainerID string, req *dto.AddStudentRequest) (*dto.StudentResponse, error)

	GetStudent(ctx context.Context, trainerID, studentID string) (*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, trainerID, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)

	// DeactivateStudent flips the student to inactive. Never a hard
	// delete: workouts, meal plans, photos and chat history all survive.
	DeactivateStudent(ctx context.Context, trainerID, studentID string) error
}

type RosterServiceImpl struct {
	db               *gorm.DB
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	emailProvider    email.Provider
	studentLimit     int
}

func NewRosterService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	emailProvider email.Provider,
	planCfg config.PlanConfig,
) RosterService {
	return &RosterServiceImpl{
		db:               db,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		refreshTokenRepo: refreshTokenRepo,
		emailProvider:    emailProvider,
		studentLimit:     planCfg.StudentLimit,
	}
}

func (s *RosterServiceImpl) ListStudents(ctx context.Context, trainerID string) (*dto.RosterResponse, error) {
	rows, err := s.profileRepo.FindActiveStudents(s.db.WithContext(ctx), trainerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	students := make([]dto.StudentResponse, 0, len(rows))
	for i := range rows {
		students = append(students, *buildStudentResponse(&rows[i]))
	}
	return &dto.RosterResponse{Students: students}, nil
}

func (s *RosterServiceImpl) AddStudent(ctx context.Context, trainerID string, req *dto.AddStudentRequest) (*dto.StudentResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	db := s.db.WithContext(ctx)

	count, err := s.profileRepo.CountActiveStudents(db, trainerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if count >= int64(s.studentLimit) {
		return nil, apperrors.ErrStudentLimitReached
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.AccountRoleStudent,
		// Trainer-created students are usable immediately: they must show
		// up in the roster without waiting for a first sign-in.
		Status: models.AccountStatusActive,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.InternalError(err)
		}
		profile := &models.Profile{
			UserID:    user.ID,
			FullName:  req.FullName,
			Goal:      req.Goal,
			Weight:    req.Weight,
			Height:    req.Height,
			TrainerID: &trainerID,
		}
		if err := s.profileRepo.Create(tx, profile); err != nil {
			return apperrors.InternalError(err)
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	trainerName := s.lookupTrainerName(ctx, trainerID)
	if err := s.emailProvider.SendWelcome(req.Email, req.FullName, trainerName, req.Password); err != nil {
		logger.CtxWithError(ctx, "failed to send welcome email", err, "student_email", req.Email)
	}

	return &dto.StudentResponse{
		ID:     user.ID,
		Name:   req.FullName,
		Email:  req.Email,
		Status: user.Status,
		Goal:   req.Goal,
		Weight: req.Weight,
		Height: req.Height,
	}, nil
}

func (s *RosterServiceImpl) GetStudent(ctx context.Context, trainerID, studentID string) (*dto.StudentResponse, error) {
	row, err := s.findRosterMember(ctx, trainerID, studentID)
	if err != nil {
		return nil, err
	}
	return buildStudentResponse(row), nil
}

func (s *RosterServiceImpl) UpdateStudent(ctx context.Context, trainerID, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	row, err := s.findRosterMember(ctx, trainerID, studentID)
	if err != nil {
		return nil, err
	}

	row.FullName = req.FullName
	row.Avatar = req.Avatar
	row.Goal = req.Goal
	row.Weight = req.Weight
	row.Height = req.Height

	if err := s.profileRepo.Update(s.db.WithContext(ctx), &row.Profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildStudentResponse(row), nil
}

func (s *RosterServiceImpl) DeactivateStudent(ctx context.Context, trainerID, studentID string) error {
	row, err := s.findRosterMember(ctx, trainerID, studentID)
	if err != nil {
		return err
	}

	if !row.Status.CanDeactivate() {
		// Already inactive. Deactivating twice changes nothing.
		return nil
	}

	db := s.db.WithContext(ctx)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdateStatus(tx, studentID, models.AccountStatusInactive); err != nil {
			return apperrors.InternalError(err)
		}
		// Kill every live session of the deactivated student.
		if err := s.refreshTokenRepo.DeleteByUserID(tx, studentID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.emailProvider.SendDeactivation(row.Email, row.FullName); err != nil {
		logger.CtxWithError(ctx, "failed to send deactivation email", err, "student_id", studentID)
	}

	return nil
}

// findRosterMember loads one student and enforces ownership: a trainer
// can only touch their own students.
func (s *RosterServiceImpl) findRosterMember(ctx context.Context, trainerID, studentID string) (*repositories.StudentRow, error) {
	row, err := s.profileRepo.FindStudentOfTrainer(s.db.WithContext(ctx), trainerID, studentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotRosterMember
		}
		return nil, apperrors.InternalError(err)
	}
	return row, nil
}

func (s *RosterServiceImpl) lookupTrainerName(ctx context.Context, trainerID string) string {
	profile, err := s.profileRepo.FindByUserID(s.db.WithContext(ctx), trainerID)
	if err != nil {
		return "seu treinador"
	}
	return profile.FullName
}

func buildStudentResponse(row *repositories.StudentRow) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:     row.UserID,
		Name:   row.FullName,
		Email:  row.Email,
		Avatar: row.Avatar,
		Status: row.Status,
		Goal:   row.Goal,
		Weight: row.Weight,
		Height: row.Height,
	}
}
