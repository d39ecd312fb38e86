package services

import (
	"errors"
	"fmt"

	"github.com/petdirectory/api/internal/activity"
	"github.com/petdirectory/api/internal/cache"
	apierrors "github.com/petdirectory/api/internal/errors"
	"github.com/petdirectory/api/internal/handlers"
	h "github.com/petdirectory/api/internal/helpers"
	m "github.com/petdirectory/api/internal/middlewares"
	"github.com/petdirectory/api/internal/models"
	"github.com/petdirectory/api/internal/notifier"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	DB             *gorm.DB
	Cache          cache.ICache
	AuthConfig     models.AuthConfig
	Notifier       notifier.INotifier
	ActivityLogger activity.IActivityLogger
}

func (s AuthService) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(m.Validate[models.AuthRegisterBody]).Post("/register", handlers.CreateHandler(s.Register))
	r.With(m.Validate[models.AuthLoginBody]).Post("/login", handlers.BodyHandler(s.Login))
	r.With(m.Validate[models.AuthRefreshBody]).Post("/refresh", handlers.BodyHandler(s.Refresh))
	r.Post("/logout", handlers.GetOneHandler(s.Logout))
	return r
}

// generateTokens mints an access/refresh pair and records the refresh token as
// the single current one for the user. Overwriting the stored value is what
// invalidates any previously issued refresh token (rotation).
func (s AuthService) generateTokens(user *models.User) (string, string, error) {
	accessToken, err := h.NewAccessToken(s.AuthConfig.JWTSecret, user, s.AuthConfig.AccessTokenExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := h.NewRefreshToken(s.AuthConfig.JWTRefreshSecret, user, s.AuthConfig.RefreshTokenExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	ttlSeconds := s.AuthConfig.RefreshTokenExpiry * 60
	if err = s.Cache.StoreRefreshToken(user.ID.String(), refreshToken, ttlSeconds); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// permitLoginAttempt implements the login guard. Every permitted attempt is
// counted up front and restarts the window, regardless of whether the password
// check that follows succeeds.
func (s AuthService) permitLoginAttempt(email string) (bool, error) {
	attempts, err := s.Cache.GetLoginAttempts(email)
	if err != nil {
		return false, fmt.Errorf("failed to read login attempts: %w", err)
	}

	if attempts >= s.AuthConfig.LoginMaxAttempts {
		return false, nil
	}

	if err = s.Cache.IncrementLoginAttempts(email, s.AuthConfig.LoginAttemptTTL); err != nil {
		return false, fmt.Errorf("failed to count login attempt: %w", err)
	}

	return true, nil
}

func (s AuthService) Register(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	body models.AuthRegisterBody,
) (models.AuthTokenResponse, error) {
	var existing models.User
	err := s.DB.Where("email = ?", body.Email).First(&existing).Error
	if err == nil {
		return models.AuthTokenResponse{}, apierrors.NewAPIError(409, apierrors.ErrEmailAlreadyRegistered)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AuthTokenResponse{}, err
	}

	hash, err := h.CreateHash(body.Password)
	if err != nil {
		return models.AuthTokenResponse{}, err
	}

	role := body.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Name:           body.Name,
		Email:          body.Email,
		HashedPassword: hash,
		Role:           role,
	}
	if err = s.DB.Create(&user).Error; err != nil {
		return models.AuthTokenResponse{}, err
	}

	accessToken, refreshToken, err := s.generateTokens(&user)
	if err != nil {
		return models.AuthTokenResponse{}, err
	}

	if s.Notifier != nil {
		if notifyErr := s.Notifier.NotifyFromTemplate(
			user.Email, "Welcome to the pet directory", "welcome", user.ToResponse(),
		); notifyErr != nil {
			logger.Error("Failed to send welcome notification", zap.Error(notifyErr))
		}
	}

	action := models.Activity{
		Message: activity.UserRegistered,
		Object:  user.ToActivity(),
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.UserRegistered,
			"user_id":     user.ID.String(),
			"email":       user.Email,
			"object_type": "user",
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log registration activity", zap.Error(logErr))
	}

	return models.AuthTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToResponse(),
	}, nil
}

func (s AuthService) Login(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	body models.AuthLoginBody,
) (models.AuthTokenResponse, error) {
	var user models.User
	err := s.DB.Where("email = ?", body.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AuthTokenResponse{}, apierrors.NewAPIError(404, apierrors.ErrUserNotFound)
		}
		return models.AuthTokenResponse{}, err
	}

	allowed, err := s.permitLoginAttempt(body.Email)
	if err != nil {
		return models.AuthTokenResponse{}, err
	}
	if !allowed {
		logger.Warn("Login attempts exhausted", zap.String("email", body.Email))
		return models.AuthTokenResponse{}, apierrors.NewAPIError(429, apierrors.ErrTooManyAttempts)
	}

	match, err := argon2id.ComparePasswordAndHash(body.Password, user.HashedPassword)
	if err != nil || !match {
		return models.AuthTokenResponse{}, apierrors.NewAPIError(401, apierrors.ErrInvalidCredentials)
	}

	if err = s.Cache.ResetLoginAttempts(body.Email); err != nil {
		return models.AuthTokenResponse{}, fmt.Errorf("failed to reset login attempts: %w", err)
	}

	accessToken, refreshToken, err := s.generateTokens(&user)
	if err != nil {
		return models.AuthTokenResponse{}, err
	}

	action := models.Activity{
		Message: activity.UserLoggedIn,
		Object:  user.ToActivity(),
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.UserLoggedIn,
			"user_id":     user.ID.String(),
			"email":       user.Email,
			"object_type": "user",
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log login activity", zap.Error(logErr))
	}

	return models.AuthTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToResponse(),
	}, nil
}

func (s AuthService) Refresh(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	body models.AuthRefreshBody,
) (models.AuthRefreshResponse, error) {
	if body.RefreshToken == "" {
		return models.AuthRefreshResponse{}, apierrors.NewAPIError(401, apierrors.ErrRefreshTokenRequired)
	}

	claims, err := h.ParseRefreshToken(s.AuthConfig.JWTRefreshSecret, body.RefreshToken)
	if err != nil {
		return models.AuthRefreshResponse{}, apierrors.NewAPIError(401, apierrors.ErrTokenInvalid)
	}

	// Signature validity is not currency: only the cache-held token is the
	// live one. A missing or different value means the token was revoked by
	// logout or superseded by a later rotation.
	storedToken, err := s.Cache.GetRefreshToken(claims.UserID.String())
	if err != nil {
		return models.AuthRefreshResponse{}, fmt.Errorf("failed to read stored refresh token: %w", err)
	}
	if storedToken == "" || storedToken != body.RefreshToken {
		logger.Warn("Stale refresh token presented", zap.String("user_id", claims.UserID.String()))
		return models.AuthRefreshResponse{}, apierrors.NewAPIError(403, apierrors.ErrInvalidRefreshToken)
	}

	var user models.User
	if err = s.DB.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AuthRefreshResponse{}, apierrors.NewAPIError(404, apierrors.ErrUserNotFound)
		}
		return models.AuthRefreshResponse{}, err
	}

	accessToken, refreshToken, err := s.generateTokens(&user)
	if err != nil {
		return models.AuthRefreshResponse{}, err
	}

	return models.AuthRefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s AuthService) Logout(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
) (models.AuthLogoutResponse, error) {
	if err := s.Cache.RevokeRefreshToken(claims.UserID.String()); err != nil {
		return models.AuthLogoutResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	action := models.Activity{
		Message: activity.UserLoggedOut,
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.UserLoggedOut,
			"user_id":     claims.UserID.String(),
			"object_type": "user",
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log logout activity", zap.Error(logErr))
	}

	return models.AuthLogoutResponse{Message: "Logged out successfully"}, nil
}
