package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/petdirectory/api/internal/errors"
	"github.com/petdirectory/api/internal/helpers"
	"github.com/petdirectory/api/internal/middlewares"
	"github.com/petdirectory/api/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BodyFunc is the shape of a service handler consuming a validated body.
type BodyFunc[B any, R any] func(logger *zap.Logger, claims models.UserClaims, ids uuid.UUIDs, body B) (R, error)

// GetFunc is the shape of a service handler without a body.
type GetFunc[R any] func(logger *zap.Logger, claims models.UserClaims, ids uuid.UUIDs) (R, error)

// QueryFunc is the shape of a service handler consuming validated query params.
type QueryFunc[Q any, R any] func(logger *zap.Logger, claims models.UserClaims, ids uuid.UUIDs, queryParams Q) (R, error)

// DeleteFunc is the shape of a service handler producing no response body.
type DeleteFunc func(logger *zap.Logger, claims models.UserClaims, ids uuid.UUIDs) error

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		helpers.RespondWithError(w, apiErr.Status, apiErr.Codes)
		return
	}

	logger.Error("Unhandled service error", zap.Error(err))
	helpers.RespondWithError(w, 500, []string{apierrors.ErrInternal})
}

func requestContext(w http.ResponseWriter, r *http.Request) (*zap.Logger, models.UserClaims, uuid.UUIDs, bool) {
	logger := middlewares.GetLogger(r.Context())
	claims, _ := r.Context().Value(models.UserClaimKey{}).(models.UserClaims)
	ids, ok := helpers.ParseUUIDs(w, r)
	return logger, claims, ids, ok
}

func handleBody[B any, R any](fn BodyFunc[B, R], status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger, claims, ids, ok := requestContext(w, r)
		if !ok {
			return
		}

		body, _ := r.Context().Value(models.ValidatedBodyKey{}).(B)

		response, err := fn(logger, claims, ids, body)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, status, response)
	}
}

// CreateHandler wraps a body-consuming handler responding 201.
func CreateHandler[B any, R any](fn BodyFunc[B, R]) http.HandlerFunc {
	return handleBody(fn, http.StatusCreated)
}

// BodyHandler wraps a body-consuming handler responding 200.
func BodyHandler[B any, R any](fn BodyFunc[B, R]) http.HandlerFunc {
	return handleBody(fn, http.StatusOK)
}

func GetOneHandler[R any](fn GetFunc[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger, claims, ids, ok := requestContext(w, r)
		if !ok {
			return
		}

		response, err := fn(logger, claims, ids)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, http.StatusOK, response)
	}
}

func GetOneWithQueryHandler[Q any, R any](fn QueryFunc[Q, R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger, claims, ids, ok := requestContext(w, r)
		if !ok {
			return
		}

		queryParams, _ := r.Context().Value(models.ValidatedQueryKey{}).(Q)

		response, err := fn(logger, claims, ids, queryParams)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, http.StatusOK, response)
	}
}

func DeleteHandler(fn DeleteFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger, claims, ids, ok := requestContext(w, r)
		if !ok {
			return
		}

		if err := fn(logger, claims, ids); err != nil {
			writeError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, http.StatusNoContent, nil)
	}
}
