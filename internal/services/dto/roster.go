package dto

import "treinai_backend/internal/models"

// StudentResponse is the roster projection of a student account.
type StudentResponse struct {
	ID     string               `json:"id"`
	Name   string               `json:"name"`
	Email  string               `json:"email"`
	Avatar string               `json:"avatar,omitempty"`
	Status models.AccountStatus `json:"status"`
	Goal   string               `json:"goal,omitempty"`
	Weight float64              `json:"weight,omitempty"`
	Height float64              `json:"height,omitempty"`
}

type AddStudentRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	FullName string  `json:"full_name" binding:"required"`
	Goal     string  `json:"goal"`
	Weight   float64 `json:"weight" binding:"omitempty,gt=0"`
	Height   float64 `json:"height" binding:"omitempty,gt=0"`
}

type UpdateStudentRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Avatar   string  `json:"avatar" binding:"omitempty,url"`
	Goal     string  `json:"goal"`
	Weight   float64 `json:"weight" binding:"omitempty,gt=0"`
	Height   float64 `json:"height" binding:"omitempty,gt=0"`
}

type RosterResponse struct {
	Students []StudentResponse `json:"students"`
}
