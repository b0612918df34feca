package services

import (
	"context"
	"time"

	"treinai_backend/internal/auth"
	"treinai_backend/internal/logger"
	"treinai_backend/internal/models"
	"treinai_backend/internal/repositories"
	"treinai_backend/internal/services/dto"
	"treinai_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	// SignUpTrainer registers a trainer account. Students never register
	// themselves; their trainer creates them through the roster.
	SignUpTrainer(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)

	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	SignOut(ctx context.Context, refreshToken string) error

	// ResolveSession re-checks the caller's account on every app load.
	// An inactive account is rejected here no matter how fresh the token
	// is, and all of its refresh tokens are revoked on the spot.
	ResolveSession(ctx context.Context, userID string) (*dto.SessionResponse, error)

	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type AuthServiceImpl struct {
	db               *gorm.DB
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

func NewAuthService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) AuthService {
	return &AuthServiceImpl{
		db:               db,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

func (s *AuthServiceImpl) SignUpTrainer(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.AccountRoleTrainer,
		Status:       models.AccountStatusNew,
	}

	db := s.db.WithContext(ctx)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.InternalError(err)
		}
		profile := &models.Profile{
			UserID:   user.ID,
			FullName: req.FullName,
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

	return s.issueTokens(ctx, user)
}

func (s *AuthServiceImpl) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	db := s.db.WithContext(ctx)

	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Correct credentials are not enough: a deactivated account gets its
	// remaining sessions killed right here, before any token is issued.
	if user.Status == models.AccountStatusInactive {
		s.revokeAllSessions(ctx, user.ID)
		return nil, apperrors.ErrAccountDeactivated
	}

	// First successful sign-in promotes a fresh account.
	if user.Status == models.AccountStatusNew {
		if err := s.userRepo.UpdateStatus(db, user.ID, models.AccountStatusActive); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.Status = models.AccountStatusActive
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	db := s.db.WithContext(ctx)

	token, err := s.refreshTokenRepo.FindByToken(db, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(token.ExpiresAt) {
		_ = s.refreshTokenRepo.DeleteByToken(db, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if user.Status == models.AccountStatusInactive {
		s.revokeAllSessions(ctx, user.ID)
		return nil, apperrors.ErrAccountDeactivated
	}

	// Rotate: the presented token is single use.
	if err := s.refreshTokenRepo.DeleteByToken(db, refreshToken); err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthServiceImpl) SignOut(ctx context.Context, refreshToken string) error {
	db := s.db.WithContext(ctx)
	if err := s.refreshTokenRepo.DeleteByToken(db, refreshToken); err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			// Signing out twice is fine.
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ResolveSession(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	db := s.db.WithContext(ctx)

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Status == models.AccountStatusInactive {
		s.revokeAllSessions(ctx, user.ID)
		return nil, apperrors.ErrAccountDeactivated
	}

	return &dto.SessionResponse{User: buildUserResponse(user)}, nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	db := s.db.WithContext(ctx)

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, userID, hash); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(s.db.WithContext(ctx), refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		User:         buildUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) revokeAllSessions(ctx context.Context, userID string) {
	if err := s.refreshTokenRepo.DeleteByUserID(s.db.WithContext(ctx), userID); err != nil {
		logger.CtxWithError(ctx, "failed to revoke sessions of deactivated account", err, "user_id", userID)
	}
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:     user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	}
	if user.Profile != nil {
		resp.FullName = user.Profile.FullName
		resp.Avatar = user.Profile.Avatar
		resp.Goal = user.Profile.Goal
		resp.Weight = user.Profile.Weight
		resp.Height = user.Profile.Height
		resp.TrainerID = user.Profile.TrainerID
	}
	return resp
}
