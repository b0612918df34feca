package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"treinai_backend/internal/auth"
	"treinai_backend/internal/models"
	"treinai_backend/internal/repositories"
	"treinai_backend/internal/services/dto"
	"treinai_backend/pkg/apperrors"
)

type fakeUserRepo struct {
	users         map[string]*models.User
	statusUpdates map[string]models.AccountStatus
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{
		users:         make(map[string]*models.User),
		statusUpdates: make(map[string]models.AccountStatus),
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateStatus(db *gorm.DB, userID string, status models.AccountStatus) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Status = status
	r.statusUpdates[userID] = status
	return nil
}

func (r *fakeUserRepo) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeRefreshTokenRepo struct {
	tokens       map[string]*models.RefreshToken
	created      []*models.RefreshToken
	revokedUsers []string
}

func newFakeRefreshTokenRepo(tokens ...*models.RefreshToken) *fakeRefreshTokenRepo {
	r := &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken)}
	for _, t := range tokens {
		r.tokens[t.Token] = t
	}
	return r
}

func (r *fakeRefreshTokenRepo) Create(db *gorm.DB, token *models.RefreshToken) error {
	r.tokens[token.Token] = token
	r.created = append(r.created, token)
	return nil
}

func (r *fakeRefreshTokenRepo) FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error) {
	if t, ok := r.tokens[tokenString]; ok {
		return t, nil
	}
	return nil, repositories.ErrRefreshTokenNotFound
}

func (r *fakeRefreshTokenRepo) DeleteByToken(db *gorm.DB, tokenString string) error {
	if _, ok := r.tokens[tokenString]; !ok {
		return repositories.ErrRefreshTokenNotFound
	}
	delete(r.tokens, tokenString)
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByUserID(db *gorm.DB, userID string) error {
	r.revokedUsers = append(r.revokedUsers, userID)
	for token, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, token)
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) CleanExpired(db *gorm.DB) error {
	return nil
}

// stubProfileRepo satisfies the constructor; the flows under test never
// touch profiles.
type stubProfileRepo struct{}

func (stubProfileRepo) Create(db *gorm.DB, profile *models.Profile) error { return nil }
func (stubProfileRepo) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	return nil, repositories.ErrProfileNotFound
}
func (stubProfileRepo) Update(db *gorm.DB, profile *models.Profile) error { return nil }
func (stubProfileRepo) FindActiveStudents(db *gorm.DB, trainerID string) ([]repositories.StudentRow, error) {
	return nil, nil
}
func (stubProfileRepo) CountActiveStudents(db *gorm.DB, trainerID string) (int64, error) {
	return 0, nil
}
func (stubProfileRepo) FindStudentOfTrainer(db *gorm.DB, trainerID, studentID string) (*repositories.StudentRow, error) {
	return nil, repositories.ErrProfileNotFound
}

// detachedDB gives the service a *gorm.DB it can derive contexts from
// without a live connection; the fakes ignore the handle entirely.
func detachedDB() *gorm.DB {
	return &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}
}

func newAuthFixture(t *testing.T, user *models.User, tokens ...*models.RefreshToken) (AuthService, *fakeRefreshTokenRepo) {
	t.Helper()
	auth.Init("test-secret", 60)
	tokenRepo := newFakeRefreshTokenRepo(tokens...)
	svc := NewAuthService(detachedDB(), newFakeUserRepo(user), stubProfileRepo{}, tokenRepo)
	return svc, tokenRepo
}

func inactiveStudent(t *testing.T) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("senha123")
	require.NoError(t, err)
	return &models.User{
		BaseModel:    models.BaseModel{ID: "student-1"},
		Email:        "aluno@example.com",
		PasswordHash: hash,
		Role:         models.AccountRoleStudent,
		Status:       models.AccountStatusInactive,
	}
}

func TestSignIn_InactiveAccountIsRejectedAndRevoked(t *testing.T) {
	user := inactiveStudent(t)
	svc, tokenRepo := newAuthFixture(t, user, &models.RefreshToken{
		UserID:    user.ID,
		Token:     "lingering-token",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	resp, err := svc.SignIn(context.Background(), &dto.SignInRequest{
		Email:    "aluno@example.com",
		Password: "senha123",
	})

	assert.ErrorIs(t, err, apperrors.ErrAccountDeactivated)
	assert.Nil(t, resp)
	assert.Equal(t, []string{"student-1"}, tokenRepo.revokedUsers, "every refresh token must be revoked")
	assert.Empty(t, tokenRepo.created, "no token may be issued to a deactivated account")
	assert.Empty(t, tokenRepo.tokens, "lingering tokens must be gone")
}

func TestSignIn_WrongPasswordBeatsStatusCheck(t *testing.T) {
	user := inactiveStudent(t)
	svc, tokenRepo := newAuthFixture(t, user)

	_, err := svc.SignIn(context.Background(), &dto.SignInRequest{
		Email:    "aluno@example.com",
		Password: "senha-errada",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Empty(t, tokenRepo.revokedUsers, "bad credentials reveal nothing about the account")
}

func TestRefresh_InactiveAccountIsRejectedAndRevoked(t *testing.T) {
	user := inactiveStudent(t)
	svc, tokenRepo := newAuthFixture(t, user, &models.RefreshToken{
		UserID:    user.ID,
		Token:     "cached-refresh",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	resp, err := svc.Refresh(context.Background(), "cached-refresh")

	assert.ErrorIs(t, err, apperrors.ErrAccountDeactivated)
	assert.Nil(t, resp)
	assert.Equal(t, []string{"student-1"}, tokenRepo.revokedUsers)
	assert.Empty(t, tokenRepo.created)
	assert.Empty(t, tokenRepo.tokens, "the presented token must not survive")
}

func TestRefresh_ExpiredTokenIsRejected(t *testing.T) {
	user := inactiveStudent(t)
	user.Status = models.AccountStatusActive
	svc, _ := newAuthFixture(t, user, &models.RefreshToken{
		UserID:    user.ID,
		Token:     "stale-refresh",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	_, err := svc.Refresh(context.Background(), "stale-refresh")

	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestResolveSession_InactiveAccountIsRejectedAndRevoked(t *testing.T) {
	user := inactiveStudent(t)
	svc, tokenRepo := newAuthFixture(t, user, &models.RefreshToken{
		UserID:    user.ID,
		Token:     "other-device",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	resp, err := svc.ResolveSession(context.Background(), "student-1")

	assert.ErrorIs(t, err, apperrors.ErrAccountDeactivated)
	assert.Nil(t, resp)
	assert.Equal(t, []string{"student-1"}, tokenRepo.revokedUsers, "a session from another device dies too")
	assert.Empty(t, tokenRepo.tokens)
}

func TestResolveSession_ActiveAccountSucceeds(t *testing.T) {
	user := inactiveStudent(t)
	user.Status = models.AccountStatusActive
	svc, tokenRepo := newAuthFixture(t, user)

	resp, err := svc.ResolveSession(context.Background(), "student-1")

	require.NoError(t, err)
	assert.Equal(t, models.AccountStatusActive, resp.User.Status)
	assert.Empty(t, tokenRepo.revokedUsers)
}
