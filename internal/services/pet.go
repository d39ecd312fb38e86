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

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PetService manages the caller's own pets. Pets are private to their owner,
// so every list/mutation is scoped to the authenticated user.
type PetService struct {
	DB             *gorm.DB
	Cache          cache.ICache
	CacheEntryTTL  int
	ActivityLogger activity.IActivityLogger
}

func (s PetService) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(m.ValidateQuery[models.PageQueryParams]).Get("/", handlers.GetOneWithQueryHandler(s.List))
	r.With(m.Validate[models.PetCreateBody]).Post("/", handlers.CreateHandler(s.Create))
	r.With(m.Validate[models.PetUpdateBody]).Put("/{id0}", handlers.BodyHandler(s.Update))
	r.Delete("/{id0}", handlers.DeleteHandler(s.Delete))
	return r
}

func (s PetService) List(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
	queryParams models.PageQueryParams,
) (models.PetListResponse, error) {
	page, limit := normalizePage(
		queryParams.Page, queryParams.Limit, configuration.DefaultPage, configuration.DefaultLimit,
	)

	key := fmt.Sprintf(configuration.CachePetListKey, claims.UserID, page, limit)
	if cached, hit := cachedRead[models.PetListResponse](logger, s.Cache, key); hit {
		return cached, nil
	}

	var total int64
	if err := s.DB.Model(&models.Pet{}).
		Where("user_id = ?", claims.UserID).
		Count(&total).Error; err != nil {
		return models.PetListResponse{}, err
	}

	var pets []models.Pet
	if err := s.DB.
		Where("user_id = ?", claims.UserID).
		Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&pets).Error; err != nil {
		return models.PetListResponse{}, err
	}

	response := models.PetListResponse{
		Total: total,
		Page:  page,
		Limit: limit,
		Pets:  pets,
	}
	cacheWrite(logger, s.Cache, key, response, s.CacheEntryTTL)

	return response, nil
}

func (s PetService) Create(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
	body models.PetCreateBody,
) (models.PetResponse, error) {
	pet := models.Pet{
		Name:   body.Name,
		Type:   body.Type,
		Age:    body.Age,
		Breed:  body.Breed,
		UserID: claims.UserID,
	}
	if err := s.DB.Create(&pet).Error; err != nil {
		return models.PetResponse{}, err
	}

	purgePrefix(logger, s.Cache, fmt.Sprintf(configuration.CachePetPrefix, claims.UserID))

	s.logActivity(logger, activity.PetCreated, claims, pet)

	return models.PetResponse{Pet: pet}, nil
}

func (s PetService) Update(
	logger *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
	body models.PetUpdateBody,
) (models.PetResponse, error) {
	pet, err := s.getOwnedPet(claims, ids[0])
	if err != nil {
		return models.PetResponse{}, err
	}

	if body.Name != "" {
		pet.Name = body.Name
	}
	if body.Type != "" {
		pet.Type = body.Type
	}
	if body.Age != nil {
		pet.Age = body.Age
	}
	if body.Breed != "" {
		pet.Breed = body.Breed
	}

	if err = s.DB.Save(&pet).Error; err != nil {
		return models.PetResponse{}, err
	}

	purgePrefix(logger, s.Cache, fmt.Sprintf(configuration.CachePetPrefix, pet.UserID))

	s.logActivity(logger, activity.PetUpdated, claims, pet)

	return models.PetResponse{Pet: pet}, nil
}

func (s PetService) Delete(
	logger *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
) error {
	pet, err := s.getOwnedPet(claims, ids[0])
	if err != nil {
		return err
	}

	if err = s.DB.Delete(&pet).Error; err != nil {
		return err
	}

	purgePrefix(logger, s.Cache, fmt.Sprintf(configuration.CachePetPrefix, pet.UserID))

	s.logActivity(logger, activity.PetDeleted, claims, pet)

	return nil
}

func (s PetService) getOwnedPet(claims models.UserClaims, petID uuid.UUID) (models.Pet, error) {
	var pet models.Pet
	if err := s.DB.Where("id = ?", petID).First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pet{}, apierrors.NewAPIError(404, apierrors.ErrPetNotFound)
		}
		return models.Pet{}, err
	}

	if !canManage(claims, pet.UserID) {
		return models.Pet{}, apierrors.NewAPIError(403, apierrors.ErrForbidden)
	}

	return pet, nil
}

func (s PetService) logActivity(
	logger *zap.Logger, action string, claims models.UserClaims, pet models.Pet,
) {
	entry := models.Activity{
		Message: action,
		Object: map[string]string{
			"id":   pet.ID.String(),
			"name": pet.Name,
			"type": pet.Type,
		},
		Filter: activity.NewLogFilter(map[string]string{
			"action":      action,
			"user_id":     claims.UserID.String(),
			"pet_id":      pet.ID.String(),
			"object_type": "pet",
		}),
	}
	if err := s.ActivityLogger.Send(entry); err != nil {
		logger.Error("Failed to log pet activity", zap.Error(err))
	}
}
