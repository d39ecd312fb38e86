package services

import (
	"github.com/petdirectory/api/internal/activity"
	"github.com/petdirectory/api/internal/handlers"
	m "github.com/petdirectory/api/internal/middlewares"
	"github.com/petdirectory/api/internal/models"
	"github.com/petdirectory/api/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultStatsDays = 30

type AdminService struct {
	DB             *gorm.DB
	ActivityLogger activity.IActivityLogger
}

func (s AdminService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(m.AuthorizeRole(models.RoleAdmin))
	r.With(m.ValidateQuery[models.AdminStatsQueryParams]).
		Get("/stats", handlers.GetOneWithQueryHandler(s.GetStats))
	r.With(m.ValidateQuery[models.ActivitySearchQueryParams]).
		Get("/activity", handlers.GetOneWithQueryHandler(s.SearchActivity))
	return r
}

func (s AdminService) GetStats(
	_ *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	queryParams models.AdminStatsQueryParams,
) (models.AdminStatsResponse, error) {
	days := queryParams.Days
	if days < 1 {
		days = defaultStatsDays
	}

	response := models.AdminStatsResponse{}

	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.User{}, &response.TotalUsers},
		{&models.Business{}, &response.TotalBusinesses},
		{&models.Pet{}, &response.TotalPets},
		{&models.Service{}, &response.TotalServices},
		{&models.Review{}, &response.TotalReviews},
	}
	for _, c := range counts {
		if err := s.DB.Model(c.model).Count(c.dest).Error; err != nil {
			return models.AdminStatsResponse{}, err
		}
	}

	response.ReviewsByDay = sql.GetReviewsByDay(s.DB, days)

	logins, err := s.ActivityLogger.CountByDay(
		map[string][]string{"action": {activity.UserLoggedIn}}, days,
	)
	if err != nil {
		return models.AdminStatsResponse{}, err
	}
	response.LoginsByDay = logins

	return response, nil
}

func (s AdminService) SearchActivity(
	_ *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	queryParams models.ActivitySearchQueryParams,
) (models.ActivitySearchResponse, error) {
	criteria := map[string][]string{}
	if queryParams.Action != "" {
		criteria["action"] = []string{queryParams.Action}
	}
	if queryParams.Email != "" {
		criteria["email"] = []string{queryParams.Email}
	}
	if queryParams.UserID != "" {
		criteria["user_id"] = []string{queryParams.UserID}
	}
	if queryParams.ObjectType != "" {
		criteria["object_type"] = []string{queryParams.ObjectType}
	}

	entries, err := s.ActivityLogger.Search(criteria)
	if err != nil {
		return models.ActivitySearchResponse{}, err
	}

	return models.ActivitySearchResponse{Entries: entries}, nil
}
