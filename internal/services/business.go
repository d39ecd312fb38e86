package services

import (
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

type BusinessService struct {
	DB             *gorm.DB
	Cache          cache.ICache
	CacheEntryTTL  int
	ActivityLogger activity.IActivityLogger
	Services       ServicesService
	Reviews        ReviewService
}

func (s BusinessService) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(m.ValidateQuery[models.BusinessListQueryParams]).Get("/", handlers.GetOneWithQueryHandler(s.List))
	r.Get("/{id0}", handlers.GetOneHandler(s.Get))
	r.With(m.ValidateQuery[models.PageQueryParams]).
		Get("/{id0}/services", handlers.GetOneWithQueryHandler(s.Services.ListByBusiness))
	r.With(m.ValidateQuery[models.PageQueryParams]).
		Get("/{id0}/reviews", handlers.GetOneWithQueryHandler(s.Reviews.ListByBusiness))
	r.With(m.AuthorizeRole(models.RoleBusiness), m.Validate[models.BusinessCreateBody]).
		Post("/", handlers.CreateHandler(s.Create))
	r.With(m.Validate[models.BusinessUpdateBody]).Put("/{id0}", handlers.BodyHandler(s.Update))
	r.Delete("/{id0}", handlers.DeleteHandler(s.Delete))
	return r
}

// canManage reports whether the caller may mutate the given business.
func canManage(claims models.UserClaims, ownerID uuid.UUID) bool {
	return claims.UserID == ownerID || claims.Role.HasAtLeast(models.RoleAdmin)
}

func (s BusinessService) List(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	queryParams models.BusinessListQueryParams,
) (models.BusinessListResponse, error) {
	page, limit := normalizePage(
		queryParams.Page, queryParams.Limit, configuration.DefaultPage, configuration.DefaultLimit,
	)

	key := fmt.Sprintf(configuration.CacheBusinessListKey, queryParams.Search, page, limit)
	if cached, hit := cachedRead[models.BusinessListResponse](logger, s.Cache, key); hit {
		return cached, nil
	}

	filter := func(db *gorm.DB) *gorm.DB {
		query := db.Model(&models.Business{})
		if queryParams.Search != "" {
			query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+queryParams.Search+"%")
		}
		return query
	}

	var total int64
	if err := filter(s.DB).Count(&total).Error; err != nil {
		return models.BusinessListResponse{}, err
	}

	var businesses []models.Business
	if err := filter(s.DB).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&businesses).Error; err != nil {
		return models.BusinessListResponse{}, err
	}

	response := models.BusinessListResponse{
		Total:      total,
		Page:       page,
		Limit:      limit,
		Businesses: businesses,
	}
	cacheWrite(logger, s.Cache, key, response, s.CacheEntryTTL)

	return response, nil
}

func (s BusinessService) Get(
	logger *zap.Logger,
	_ models.UserClaims,
	ids uuid.UUIDs,
) (models.BusinessResponse, error) {
	key := fmt.Sprintf(configuration.CacheBusinessKey, ids[0])
	if cached, hit := cachedRead[models.BusinessResponse](logger, s.Cache, key); hit {
		return cached, nil
	}

	business, err := sql.GetBusinessByID(s.DB, ids[0])
	if err != nil {
		return models.BusinessResponse{}, err
	}

	response := models.BusinessResponse{Business: business}
	cacheWrite(logger, s.Cache, key, response, s.CacheEntryTTL)

	return response, nil
}

func (s BusinessService) Create(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
	body models.BusinessCreateBody,
) (models.BusinessResponse, error) {
	business := models.Business{
		Name:        body.Name,
		Type:        body.Type,
		Address:     body.Address,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		ContactInfo: body.ContactInfo,
		Description: body.Description,
		UserID:      claims.UserID,
	}
	if err := s.DB.Create(&business).Error; err != nil {
		return models.BusinessResponse{}, err
	}

	purgePrefix(logger, s.Cache, configuration.CacheBusinessPrefix)

	s.logActivity(logger, activity.BusinessCreated, claims, business)

	return models.BusinessResponse{Business: business}, nil
}

func (s BusinessService) Update(
	logger *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
	body models.BusinessUpdateBody,
) (models.BusinessResponse, error) {
	business, err := sql.GetBusinessByID(s.DB, ids[0])
	if err != nil {
		return models.BusinessResponse{}, err
	}

	if !canManage(claims, business.UserID) {
		return models.BusinessResponse{}, apierrors.NewAPIError(403, apierrors.ErrForbidden)
	}

	if body.Name != "" {
		business.Name = body.Name
	}
	if body.Type != "" {
		business.Type = body.Type
	}
	if body.Address != "" {
		business.Address = body.Address
	}
	if body.Latitude != nil {
		business.Latitude = body.Latitude
	}
	if body.Longitude != nil {
		business.Longitude = body.Longitude
	}
	if body.ContactInfo != "" {
		business.ContactInfo = body.ContactInfo
	}
	if body.Description != "" {
		business.Description = body.Description
	}

	if err = s.DB.Save(&business).Error; err != nil {
		return models.BusinessResponse{}, err
	}

	purgePrefix(logger, s.Cache, configuration.CacheBusinessPrefix)

	s.logActivity(logger, activity.BusinessUpdated, claims, business)

	return models.BusinessResponse{Business: business}, nil
}

func (s BusinessService) Delete(
	logger *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
) error {
	business, err := sql.GetBusinessByID(s.DB, ids[0])
	if err != nil {
		return err
	}

	if !canManage(claims, business.UserID) {
		return apierrors.NewAPIError(403, apierrors.ErrForbidden)
	}

	if err = s.DB.Delete(&business).Error; err != nil {
		return err
	}

	purgePrefix(logger, s.Cache, configuration.CacheBusinessPrefix)
	purgePrefix(logger, s.Cache, fmt.Sprintf(configuration.CacheServicePrefix, business.ID))
	purgePrefix(logger, s.Cache, fmt.Sprintf(configuration.CacheReviewPrefix, business.ID))

	s.logActivity(logger, activity.BusinessDeleted, claims, business)

	return nil
}

func (s BusinessService) logActivity(
	logger *zap.Logger, action string, claims models.UserClaims, business models.Business,
) {
	entry := models.Activity{
		Message: action,
		Object:  business.ToActivity(),
		Filter: activity.NewLogFilter(map[string]string{
			"action":      action,
			"user_id":     claims.UserID.String(),
			"business_id": business.ID.String(),
			"object_type": "business",
		}),
	}
	if err := s.ActivityLogger.Send(entry); err != nil {
		logger.Error("Failed to log business activity", zap.Error(err))
	}
}
