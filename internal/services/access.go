package services

import (
	"context"

	"treinai_backend/internal/models"
	"treinai_backend/internal/repositories"
	"treinai_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ensureStudentAccess checks that the requester may read or write data
// belonging to studentID: either the requester is that student, or a
// trainer who owns them.
func ensureStudentAccess(ctx context.Context, db *gorm.DB, profileRepo repositories.ProfileRepository, requesterID string, requesterRole models.AccountRole, studentID string) error {
	if requesterRole == models.AccountRoleStudent {
		if requesterID != studentID {
			return apperrors.ErrNotRosterMember
		}
		return nil
	}

	_, err := profileRepo.FindStudentOfTrainer(db.WithContext(ctx), requesterID, studentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotRosterMember
		}
		return apperrors.InternalError(err)
	}
	return nil
}
