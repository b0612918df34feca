package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"treinai_backend/internal/config"
	"treinai_backend/internal/logger"
	"treinai_backend/internal/models"
	"treinai_backend/internal/repositories"
	"treinai_backend/internal/services/dto"
	"treinai_backend/internal/storage"
	"treinai_backend/pkg/apperrors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// PhotoUpload is one incoming file, already sized by the HTTP layer.
type PhotoUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

type PhotoService interface {
	UploadPhoto(ctx context.Context, requesterID string, requesterRole models.AccountRole, studentID string, upload *PhotoUpload) (*dto.PhotoResponse, error)

	// UploadComparison stores a before/after pair. Both uploads run
	// concurrently and both must succeed; on any failure the stored half
	// is removed and no comparison row is written.
	UploadComparison(ctx context.Context, requesterID string, requesterRole models.AccountRole, studentID string, before, after *PhotoUpload) (*dto.ComparisonResponse, error)

	ListPhotos(ctx context.Context, requesterID string, requesterRole models.AccountRole, studentID string) (*dto.PhotoListResponse, error)
	DeletePhoto(ctx context.Context, requesterID string, requesterRole models.AccountRole, photoID string) error
	DeleteComparison(ctx context.Context, requesterID string, requesterRole models.AccountRole, comparisonID string) error
}

type PhotoServiceImpl struct {
	db          *gorm.DB
	photoRepo   repositories.PhotoRepository
	profileRepo repositories.ProfileRepository
	store       storage.Storage
	uploadCfg   config.UploadConfig
}

func NewPhotoService(
	db *gorm.DB,
	photoRepo repositories.PhotoRepository,
	profileRepo repositories.ProfileRepository,
	store storage.Storage,
	uploadCfg config.UploadConfig,
) PhotoService {
	return &PhotoServiceImpl{
		db:          db,
		photoRepo:   photoRepo,
		profileRepo: profileRepo,
		store:       store,
		uploadCfg:   uploadCfg,
	}
}

func (s *PhotoServiceImpl) UploadPhoto(ctx context.Context, requesterID string, requesterRole models.AccountRole, studentID string, upload *PhotoUpload) (*dto.PhotoResponse, error) {
	if err := ensureStudentAccess(ctx, s.db, s.profileRepo, requesterID, requesterRole, studentID); err != nil {
		return nil, err
	}
	if err := s.validateUpload(upload); err != nil {
		return nil, err
	}

	key := s.buildKey(studentID, upload.ContentType)
	if err := s.store.Save(ctx, key, upload.Reader, upload.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	photo := &models.ProgressPhoto{
		StudentID: studentID,
		PhotoURL:  s.store.GetURL(key),
		Path:      key,
	}
	if err := s.photoRepo.CreatePhoto(s.db.WithContext(ctx), photo); err != nil {
		// The object is orphaned if this row fails; remove it again.
		s.cleanup(ctx, key)
		return nil, apperrors.InternalError(err)
	}

	return &dto.PhotoResponse{
		ID:        photo.ID,
		PhotoURL:  photo.PhotoURL,
		CreatedAt: photo.CreatedAt,
	}, nil
}

func (s *PhotoServiceImpl) UploadComparison(ctx context.Context, requesterID string, requesterRole models.AccountRole, studentID string, before, after *PhotoUpload) (*dto.ComparisonResponse, error) {
	if err := ensureStudentAccess(ctx, s.db, s.profileRepo, requesterID, requesterRole, studentID); err != nil {
		return nil, err
	}
	if err := s.validateUpload(before); err != nil {
		return nil, err
	}
	if err := s.validateUpload(after); err != nil {
		return nil, err
	}

	beforeKey := s.buildKey(studentID, before.ContentType)
	afterKey := s.buildKey(studentID, after.ContentType)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.store.Save(gctx, beforeKey, before.Reader, before.ContentType)
	})
	g.Go(func() error {
		return s.store.Save(gctx, afterKey, after.Reader, after.ContentType)
	})
	if err := g.Wait(); err != nil {
		s.cleanup(ctx, beforeKey)
		s.cleanup(ctx, afterKey)
		return nil, apperrors.InternalError(err)
	}

	comparison := &models.PhotoComparison{
		StudentID:  studentID,
		BeforeURL:  s.store.GetURL(beforeKey),
		AfterURL:   s.store.GetURL(afterKey),
		BeforePath: beforeKey,
		AfterPath:  afterKey,
	}
	if err := s.photoRepo.CreateComparison(s.db.WithContext(ctx), comparison); err != nil {
		s.cleanup(ctx, beforeKey)
		s.cleanup(ctx, afterKey)
		return nil, apperrors.InternalError(err)
	}

	return &dto.ComparisonResponse{
		ID:        comparison.ID,
		BeforeURL: comparison.BeforeURL,
		AfterURL:  comparison.AfterURL,
		CreatedAt: comparison.CreatedAt,
	}, nil
}

func (s *PhotoServiceImpl) ListPhotos(ctx context.Context, requesterID string, requesterRole models.AccountRole, studentID string) (*dto.PhotoListResponse, error) {
	if err := ensureStudentAccess(ctx, s.db, s.profileRepo, requesterID, requesterRole, studentID); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	photos, err := s.photoRepo.FindPhotosByStudentID(db, studentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	comparisons, err := s.photoRepo.FindComparisonsByStudentID(db, studentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.PhotoListResponse{
		Photos:      make([]dto.PhotoResponse, 0, len(photos)),
		Comparisons: make([]dto.ComparisonResponse, 0, len(comparisons)),
	}
	for _, p := range photos {
		resp.Photos = append(resp.Photos, dto.PhotoResponse{
			ID:        p.ID,
			PhotoURL:  p.PhotoURL,
			CreatedAt: p.CreatedAt,
		})
	}
	for _, c := range comparisons {
		resp.Comparisons = append(resp.Comparisons, dto.ComparisonResponse{
			ID:        c.ID,
			BeforeURL: c.BeforeURL,
			AfterURL:  c.AfterURL,
			CreatedAt: c.CreatedAt,
		})
	}
	return resp, nil
}

func (s *PhotoServiceImpl) DeletePhoto(ctx context.Context, requesterID string, requesterRole models.AccountRole, photoID string) error {
	db := s.db.WithContext(ctx)

	photo, err := s.photoRepo.FindPhotoByID(db, photoID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPhotoNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := ensureStudentAccess(ctx, s.db, s.profileRepo, requesterID, requesterRole, photo.StudentID); err != nil {
		return err
	}

	if err := s.photoRepo.DeletePhoto(db, photoID); err != nil {
		return apperrors.InternalError(err)
	}
	s.cleanup(ctx, photo.Path)
	return nil
}

func (s *PhotoServiceImpl) DeleteComparison(ctx context.Context, requesterID string, requesterRole models.AccountRole, comparisonID string) error {
	db := s.db.WithContext(ctx)

	comparison, err := s.photoRepo.FindComparisonByID(db, comparisonID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrComparisonNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := ensureStudentAccess(ctx, s.db, s.profileRepo, requesterID, requesterRole, comparison.StudentID); err != nil {
		return err
	}

	if err := s.photoRepo.DeleteComparison(db, comparisonID); err != nil {
		return apperrors.InternalError(err)
	}
	s.cleanup(ctx, comparison.BeforePath)
	s.cleanup(ctx, comparison.AfterPath)
	return nil
}

func (s *PhotoServiceImpl) validateUpload(upload *PhotoUpload) error {
	if upload.Size > s.uploadCfg.MaxSize {
		return apperrors.ErrFileTooLarge
	}
	for _, allowed := range s.uploadCfg.AllowedTypes {
		if upload.ContentType == allowed {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}

func (s *PhotoServiceImpl) buildKey(studentID, contentType string) string {
	ext := ".jpg"
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	}
	return path.Join("photos", studentID, fmt.Sprintf("%s%s", uuid.New().String(), ext))
}

func (s *PhotoServiceImpl) cleanup(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		logger.CtxWithError(ctx, "failed to remove stored photo", err, "key", key)
	}
}
