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

// ServicesService manages the offerings a business lists in the directory.
type ServicesService struct {
	DB             *gorm.DB
	Cache          cache.ICache
	CacheEntryTTL  int
	ActivityLogger activity.IActivityLogger
}

func (s ServicesService) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(m.ValidateQuery[models.PageQueryParams]).
		Get("/business/{id0}", handlers.GetOneWithQueryHandler(s.ListByBusiness))
	r.With(m.AuthorizeRole(models.RoleBusiness), m.Validate[models.ServiceCreateBody]).
		Post("/", handlers.CreateHandler(s.Create))
	r.Delete("/{id0}", handlers.DeleteHandler(s.Delete))
	return r
}

func (s ServicesService) ListByBusiness(
	logger *zap.Logger,
	_ models.UserClaims,
	ids uuid.UUIDs,
	queryParams models.PageQueryParams,
) (models.ServiceListResponse, error) {
	page, limit := normalizePage(
		queryParams.Page, queryParams.Limit, configuration.DefaultPage, configuration.DefaultLimit,
	)

	key := fmt.Sprintf(configuration.CacheServiceListKey, ids[0], page, limit)
	if cached, hit := cachedRead[models.ServiceListResponse](logger, s.Cache, key); hit {
		return cached, nil
	}

	if _, err := sql.GetBusinessByID(s.DB, ids[0]); err != nil {
		return models.ServiceListResponse{}, err
	}

	var total int64
	if err := s.DB.Model(&models.Service{}).
		Where("business_id = ?", ids[0]).
		Count(&total).Error; err != nil {
		return models.ServiceListResponse{}, err
	}

	var offerings []models.Service
	if err := s.DB.
		Where("business_id = ?", ids[0]).
		Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&offerings).Error; err != nil {
		return models.ServiceListResponse{}, err
	}

	response := models.ServiceListResponse{
		Total:    total,
		Page:     page,
		Limit:    limit,
		Services: offerings,
	}
	cacheWrite(logger, s.Cache, key, response, s.CacheEntryTTL)

	return response, nil
}

func (s ServicesService) Create(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
	body models.ServiceCreateBody,
) (models.ServiceResponse, error) {
	business, err := sql.GetBusinessByID(s.DB, body.BusinessID)
	if err != nil {
		return models.ServiceResponse{}, err
	}

	if !canManage(claims, business.UserID) {
		return models.ServiceResponse{}, apierrors.NewAPIError(403, apierrors.ErrForbidden)
	}

	offering := models.Service{
		Name:       body.Name,
		Price:      body.Price,
		Duration:   body.Duration,
		BusinessID: body.BusinessID,
	}
	if err = s.DB.Create(&offering).Error; err != nil {
		return models.ServiceResponse{}, err
	}

	purgePrefix(logger, s.Cache, fmt.Sprintf(configuration.CacheServicePrefix, body.BusinessID))

	s.logActivity(logger, activity.ServiceCreated, claims, offering)

	return models.ServiceResponse{Service: offering}, nil
}

func (s ServicesService) Delete(
	logger *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
) error {
	var offering models.Service
	if err := s.DB.Where("id = ?", ids[0]).First(&offering).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewAPIError(404, apierrors.ErrServiceNotFound)
		}
		return err
	}

	business, err := sql.GetBusinessByID(s.DB, offering.BusinessID)
	if err != nil {
		return err
	}

	if !canManage(claims, business.UserID) {
		return apierrors.NewAPIError(403, apierrors.ErrForbidden)
	}

	if err = s.DB.Delete(&offering).Error; err != nil {
		return err
	}

	purgePrefix(logger, s.Cache, fmt.Sprintf(configuration.CacheServicePrefix, offering.BusinessID))

	s.logActivity(logger, activity.ServiceDeleted, claims, offering)

	return nil
}

func (s ServicesService) logActivity(
	logger *zap.Logger, action string, claims models.UserClaims, offering models.Service,
) {
	entry := models.Activity{
		Message: action,
		Object: map[string]string{
			"id":   offering.ID.String(),
			"name": offering.Name,
		},
		Filter: activity.NewLogFilter(map[string]string{
			"action":      action,
			"user_id":     claims.UserID.String(),
			"business_id": offering.BusinessID.String(),
			"service_id":  offering.ID.String(),
			"object_type": "service",
		}),
	}
	if err := s.ActivityLogger.Send(entry); err != nil {
		logger.Error("Failed to log service activity", zap.Error(err))
	}
}
