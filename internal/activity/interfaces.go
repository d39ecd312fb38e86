package activity

import (
	"strconv"
	"time"

	"github.com/petdirectory/api/internal/models"
)

// IActivityLogger defines a common interface for all logs.
type IActivityLogger interface {
	Search(searchCriteria map[string][]string) ([]map[string]interface{}, error)
	Send(message models.Activity) error
	CountByDay(searchCriteria map[string][]string, days int) ([]models.TimeSeriesPoint, error)
	Close() error
}

func NewLogFilter(fields map[string]string) models.LogFilter {
	return models.LogFilter{
		Timestamp: strconv.FormatInt(time.Now().UnixNano(), 10),
		Fields:    fields,
	}
}

// Audit actions.
const (
	UserRegistered = "user.registered"
	UserLoggedIn   = "user.logged_in"
	UserLoggedOut  = "user.logged_out"
	UserUpdated    = "user.updated"

	BusinessCreated = "business.created"
	BusinessUpdated = "business.updated"
	BusinessDeleted = "business.deleted"

	ServiceCreated = "service.created"
	ServiceDeleted = "service.deleted"

	ReviewCreated = "review.created"
	ReviewDeleted = "review.deleted"

	PetCreated = "pet.created"
	PetUpdated = "pet.updated"
	PetDeleted = "pet.deleted"
)
