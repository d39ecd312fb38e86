package services

import (
	"errors"
	"fmt"

	"github.com/petdirectory/api/internal/activity"
	"github.com/petdirectory/api/internal/cache"
	"github.com/petdirectory/api/internal/configuration"
	apierrors "github.com/petdirectory/api/internal/errors"
	"github.com/petdirectory/api/internal/handlers"
	m "github.com/petdirectory/api/internal/middlewares"
	"github.com/petdirectory/api/internal/models"
	"github.com/petdirectory/api/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReviewService struct {
	DB             *gorm.DB
	Cache          cache.ICache
	CacheEntryTTL  int
	ActivityLogger activity.IActivityLogger
}

func (s ReviewService) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(m.ValidateQuery[models.PageQueryParams]).
		Get("/business/{id0}", handlers.GetOneWithQueryHandler(s.ListByBusiness))
	r.With(m.Validate[models.ReviewCreateBody]).Post("/", handlers.CreateHandler(s.Create))
	r.Delete("/{id0}", handlers.DeleteHandler(s.Delete))
	return r
}

func (s ReviewService) ListByBusiness(
	logger *zap.Logger,
	_ models.UserClaims,
	ids uuid.UUIDs,
	queryParams models.PageQueryParams,
) (models.ReviewListResponse, error) {
	page, limit := normalizePage(
		queryParams.Page, queryParams.Limit, configuration.DefaultPage, configuration.DefaultLimit,
	)

	key := fmt.Sprintf(configuration.CacheReviewListKey, ids[0], page, limit)
	if cached, hit := cachedRead[models.ReviewListResponse](logger, s.Cache, key); hit {
		return cached, nil
	}

	if _, err := sql.GetBusinessByID(s.DB, ids[0]); err != nil {
		return models.ReviewListResponse{}, err
	}

	var total int64
	if err := s.DB.Model(&models.Review{}).
		Where("business_id = ?", ids[0]).
		Count(&total).Error; err != nil {
		return models.ReviewListResponse{}, err
	}

	var reviews []models.Review
	if err := s.DB.
		Where("business_id = ?", ids[0]).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return models.ReviewListResponse{}, err
	}

	response := models.ReviewListResponse{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Reviews: reviews,
	}
	cacheWrite(logger, s.Cache, key, response, s.CacheEntryTTL)

	return response, nil
}

func (s ReviewService) Create(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
	body models.ReviewCreateBody,
) (models.ReviewResponse, error) {
	if _, err := sql.GetBusinessByID(s.DB, body.BusinessID); err != nil {
		return models.ReviewResponse{}, err
	}

	if body.ServiceID != nil {
		var offering models.Service
		err := s.DB.Where("id = ? AND business_id = ?", body.ServiceID, body.BusinessID).
			First(&offering).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ReviewResponse{}, apierrors.NewAPIError(404, apierrors.ErrServiceNotFound)
			}
			return models.ReviewResponse{}, err
		}
	}

	review := models.Review{
		Rating:     body.Rating,
		Comment:    body.Comment,
		UserID:     claims.UserID,
		BusinessID: body.BusinessID,
		ServiceID:  body.ServiceID,
	}
	if err := s.DB.Create(&review).Error; err != nil {
		return models.ReviewResponse{}, err
	}

	purgePrefix(logger, s.Cache, fmt.Sprintf(configuration.CacheReviewPrefix, body.BusinessID))

	s.logActivity(logger, activity.ReviewCreated, claims, review)

	return models.ReviewResponse{Review: review}, nil
}

func (s ReviewService) Delete(
	logger *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
) error {
	var review models.Review
	if err := s.DB.Where("id = ?", ids[0]).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewAPIError(404, apierrors.ErrReviewNotFound)
		}
		return err
	}

	if !canManage(claims, review.UserID) {
		return apierrors.NewAPIError(403, apierrors.ErrForbidden)
	}

	if err := s.DB.Delete(&review).Error; err != nil {
		return err
	}

	purgePrefix(logger, s.Cache, fmt.Sprintf(configuration.CacheReviewPrefix, review.BusinessID))

	s.logActivity(logger, activity.ReviewDeleted, claims, review)

	return nil
}

func (s ReviewService) logActivity(
	logger *zap.Logger, action string, claims models.UserClaims, review models.Review,
) {
	entry := models.Activity{
		Message: action,
		Object: map[string]string{
			"id":     review.ID.String(),
			"rating": fmt.Sprintf("%d", review.Rating),
		},
		Filter: activity.NewLogFilter(map[string]string{
			"action":      action,
			"user_id":     claims.UserID.String(),
			"business_id": review.BusinessID.String(),
			"review_id":   review.ID.String(),
			"object_type": "review",
		}),
	}
	if err := s.ActivityLogger.Send(entry); err != nil {
		logger.Error("Failed to log review activity", zap.Error(err))
	}
}
