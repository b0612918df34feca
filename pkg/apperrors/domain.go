package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository not-found into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a duplicate into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the domain forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 400 for illegal status transitions.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- Auth & account status ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrAccountDeactivated is the hard security gate: an inactive account
// must never reach a role-specific view, even with a valid token.
var ErrAccountDeactivated = New(
	CodeAccountDeactivated,
	"auth",
	"This account has been deactivated by the trainer",
	http.StatusForbidden,
)

var ErrTrainerRequired = New(
	CodeForbidden,
	"auth",
	"This operation requires a trainer account",
	http.StatusForbidden,
)

// --- Roster ---

var ErrNotRosterMember = New(
	CodeForbidden,
	"roster",
	"Student does not belong to this trainer",
	http.StatusForbidden,
)

var ErrStudentLimitReached = New(
	CodeLimitExceeded,
	"roster",
	"Student limit for the current plan has been reached",
	http.StatusForbidden,
)

// --- Chat ---

var ErrPartnerNotLinked = New(
	CodeNotFound,
	"chat",
	"No conversation partner is linked to this account",
	http.StatusNotFound,
)

// --- AI suggestions ---

var ErrGenerationFailed = New(
	CodeExternalServiceError,
	"ai",
	"Content generation failed",
	http.StatusBadGateway,
)

// --- Uploads & files ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
