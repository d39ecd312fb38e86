package apierrors

import "strings"

// APIError is the taxonomy surfaced to clients: a status plus one or more
// machine-readable codes. Anything else bubbling out of a service is mapped
// to 500 INTERNAL_ERROR by the handler layer.
type APIError struct {
	Status int
	Codes  []string
}

func (e *APIError) Error() string {
	return strings.Join(e.Codes, ", ")
}

func NewAPIError(status int, codes ...string) *APIError {
	return &APIError{Status: status, Codes: codes}
}

// HTTP 409 Conflict.
const (
	ErrEmailAlreadyRegistered = "EMAIL_ALREADY_REGISTERED"
)

// HTTP 404 Not Found.
const (
	ErrUserNotFound     = "USER_NOT_FOUND"
	ErrBusinessNotFound = "BUSINESS_NOT_FOUND"
	ErrServiceNotFound  = "SERVICE_NOT_FOUND"
	ErrReviewNotFound   = "REVIEW_NOT_FOUND"
	ErrPetNotFound      = "PET_NOT_FOUND"
)

// HTTP 429 Too Many Requests.
const (
	ErrTooManyAttempts = "TOO_MANY_ATTEMPTS"
	ErrRateLimited     = "RATE_LIMITED"
)

// HTTP 401 Unauthorized.
const (
	ErrInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrTokenInvalid         = "TOKEN_INVALID"
	ErrUnauthorized         = "UNAUTHORIZED"
	ErrRefreshTokenRequired = "REFRESH_TOKEN_REQUIRED"
)

// HTTP 403 Forbidden.
const (
	ErrForbidden           = "FORBIDDEN"
	ErrInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
)

// HTTP 500 Internal Server Error.
const (
	ErrInternal = "INTERNAL_ERROR"
)
