package services

import (
	"github.com/petdirectory/api/internal/activity"
	"github.com/petdirectory/api/internal/handlers"
	h "github.com/petdirectory/api/internal/helpers"
	m "github.com/petdirectory/api/internal/middlewares"
	"github.com/petdirectory/api/internal/models"
	"github.com/petdirectory/api/internal/notifier"
	"github.com/petdirectory/api/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	DB             *gorm.DB
	Notifier       notifier.INotifier
	ActivityLogger activity.IActivityLogger
}

func (s UserService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/me", handlers.GetOneHandler(s.GetMe))
	r.With(m.Validate[models.UserUpdateBody]).Put("/me", handlers.BodyHandler(s.UpdateMe))
	return r
}

func (s UserService) GetMe(
	_ *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
) (models.UserResponse, error) {
	user, err := sql.GetUserByID(s.DB, claims.UserID)
	if err != nil {
		return models.UserResponse{}, err
	}

	return user.ToResponse(), nil
}

func (s UserService) UpdateMe(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
	body models.UserUpdateBody,
) (models.UserResponse, error) {
	user, err := sql.GetUserByID(s.DB, claims.UserID)
	if err != nil {
		return models.UserResponse{}, err
	}

	if body.Name != "" {
		user.Name = body.Name
	}

	passwordChanged := false
	if body.Password != "" {
		hash, hashErr := h.CreateHash(body.Password)
		if hashErr != nil {
			return models.UserResponse{}, hashErr
		}
		user.HashedPassword = hash
		passwordChanged = true
	}

	if err = s.DB.Save(&user).Error; err != nil {
		return models.UserResponse{}, err
	}

	if passwordChanged && s.Notifier != nil {
		if notifyErr := s.Notifier.NotifyFromTemplate(
			user.Email, "Your password was changed", "password_changed", user.ToResponse(),
		); notifyErr != nil {
			logger.Error("Failed to send password change notification", zap.Error(notifyErr))
		}
	}

	entry := models.Activity{
		Message: activity.UserUpdated,
		Object:  user.ToActivity(),
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.UserUpdated,
			"user_id":     user.ID.String(),
			"email":       user.Email,
			"object_type": "user",
		}),
	}
	if logErr := s.ActivityLogger.Send(entry); logErr != nil {
		logger.Error("Failed to log user activity", zap.Error(logErr))
	}

	return user.ToResponse(), nil
}
