package dto

import "treinai_backend/internal/models"

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// UserResponse is the account as the client sees it.
type UserResponse struct {
	ID        string               `json:"id"`
	Email     string               `json:"email"`
	Role      models.AccountRole   `json:"role"`
	Status    models.AccountStatus `json:"status"`
	FullName  string               `json:"full_name"`
	Avatar    string               `json:"avatar,omitempty"`
	Goal      string               `json:"goal,omitempty"`
	Weight    float64              `json:"weight,omitempty"`
	Height    float64              `json:"height,omitempty"`
	TrainerID *string              `json:"trainer_id,omitempty"`
}

type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user"`
}

// SessionResponse answers "who am I right now". Role and status drive
// the client's landing decision on every load.
type SessionResponse struct {
	User *UserResponse `json:"user"`
}
