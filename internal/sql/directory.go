package sql

import (
	"errors"
	"time"

	apierrors "github.com/petdirectory/api/internal/errors"
	"github.com/petdirectory/api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetUserByID(db *gorm.DB, userID uuid.UUID) (models.User, error) {
	var user models.User

	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apierrors.NewAPIError(404, apierrors.ErrUserNotFound)
		}
		return models.User{}, err
	}

	return user, nil
}

func GetBusinessByID(db *gorm.DB, businessID uuid.UUID) (models.Business, error) {
	var business models.Business

	if err := db.Where("id = ?", businessID).First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Business{}, apierrors.NewAPIError(404, apierrors.ErrBusinessNotFound)
		}
		return models.Business{}, err
	}

	return business, nil
}

// GetReviewsByDay returns review counts per calendar day for the last N days.
func GetReviewsByDay(db *gorm.DB, days int) []models.TimeSeriesPoint {
	var result []models.TimeSeriesPoint

	startDate := time.Now().AddDate(0, 0, -days)

	db.Model(&models.Review{}).
		Select("TO_CHAR(reviews.created_at, 'YYYY-MM-DD') as date, COUNT(*) as count").
		Where("reviews.created_at >= ?", startDate).
		Group("TO_CHAR(reviews.created_at, 'YYYY-MM-DD')").
		Order("date ASC").
		Scan(&result)

	return result
}
