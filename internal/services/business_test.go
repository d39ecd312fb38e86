package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/petdirectory/api/internal/configuration"
	apierrors "github.com/petdirectory/api/internal/errors"
	m "github.com/petdirectory/api/internal/middlewares"
	"github.com/petdirectory/api/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newBusinessService(t *testing.T) (BusinessService, sqlmock.Sqlmock, *fakeCache) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	cache := newFakeCache()
	service := BusinessService{
		DB:             gormDB,
		Cache:          cache,
		CacheEntryTTL:  configuration.CacheEntryTTLSec,
		ActivityLogger: &MockActivityLogger{},
	}

	return service, mock, cache
}

func TestBusinessList(t *testing.T) {
	t.Run("should serve a cached page without touching the database", func(t *testing.T) {
		service, mock, cache := newBusinessService(t)

		cached := models.BusinessListResponse{
			Total: 1,
			Page:  1,
			Limit: 10,
			Businesses: []models.Business{
				{ID: uuid.New(), Name: "Happy Paws", Type: models.BusinessTypeGroomer},
			},
		}
		raw, err := json.Marshal(cached)
		require.NoError(t, err)

		key := fmt.Sprintf(configuration.CacheBusinessListKey, "", 1, 10)
		require.NoError(t, cache.Set(key, string(raw), configuration.CacheEntryTTLSec))

		response, err := service.List(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{}, models.BusinessListQueryParams{})
		require.NoError(t, err)

		assert.Equal(t, cached.Total, response.Total)
		require.Len(t, response.Businesses, 1)
		assert.Equal(t, "Happy Paws", response.Businesses[0].Name)

		// No queries were expected, so none may have run.
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should populate the cache on a miss", func(t *testing.T) {
		service, mock, cache := newBusinessService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "businesses"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		// Newest businesses come first.
		businessID := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "businesses" ORDER BY created_at DESC`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "address"}).
				AddRow(businessID, "City Vet", models.BusinessTypeVet, "1 Main St"))

		response, err := service.List(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{}, models.BusinessListQueryParams{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), response.Total)

		key := fmt.Sprintf(configuration.CacheBusinessListKey, "", 1, 10)
		raw, found, err := cache.Get(key)
		require.NoError(t, err)
		require.True(t, found)

		var stored models.BusinessListResponse
		require.NoError(t, json.Unmarshal([]byte(raw), &stored))
		assert.Equal(t, response.Total, stored.Total)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should cache distinct pages under distinct keys", func(t *testing.T) {
		service, mock, cache := newBusinessService(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "businesses"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "businesses"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := service.List(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{}, models.BusinessListQueryParams{
			Search: "vet",
			Page:   2,
			Limit:  5,
		})
		require.NoError(t, err)

		_, found, err := cache.Get(fmt.Sprintf(configuration.CacheBusinessListKey, "vet", 2, 5))
		require.NoError(t, err)
		assert.True(t, found)

		_, found, err = cache.Get(fmt.Sprintf(configuration.CacheBusinessListKey, "", 1, 10))
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestBusinessNestedRoutes(t *testing.T) {
	t.Run("should serve services and reviews nested under a business", func(t *testing.T) {
		m.InitValidator()

		service, mock, cache := newBusinessService(t)
		service.Services = ServicesService{
			DB:             service.DB,
			Cache:          cache,
			CacheEntryTTL:  configuration.CacheEntryTTLSec,
			ActivityLogger: &MockActivityLogger{},
		}
		service.Reviews = ReviewService{
			DB:             service.DB,
			Cache:          cache,
			CacheEntryTTL:  configuration.CacheEntryTTLSec,
			ActivityLogger: &MockActivityLogger{},
		}
		router := service.Routes()

		businessID := uuid.New()

		// Cached pages keep the database out of the routing check.
		services, err := json.Marshal(models.ServiceListResponse{Total: 1, Page: 1, Limit: 10})
		require.NoError(t, err)
		require.NoError(t, cache.Set(
			fmt.Sprintf(configuration.CacheServiceListKey, businessID, 1, 10),
			string(services), configuration.CacheEntryTTLSec,
		))

		reviews, err := json.Marshal(models.ReviewListResponse{Total: 2, Page: 1, Limit: 10})
		require.NoError(t, err)
		require.NoError(t, cache.Set(
			fmt.Sprintf(configuration.CacheReviewListKey, businessID, 1, 10),
			string(reviews), configuration.CacheEntryTTLSec,
		))

		for _, path := range []string{
			"/" + businessID.String() + "/services",
			"/" + businessID.String() + "/reviews",
		} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusOK, recorder.Code, path)
		}

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBusinessGet(t *testing.T) {
	t.Run("should cache the detail under the purgeable prefix", func(t *testing.T) {
		service, mock, cache := newBusinessService(t)

		businessID := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "businesses" WHERE id = $1`)).
			WithArgs(businessID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "address"}).
				AddRow(businessID, "City Vet", models.BusinessTypeVet, "1 Main St"))

		response, err := service.Get(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{businessID})
		require.NoError(t, err)
		assert.Equal(t, "City Vet", response.Business.Name)

		key := fmt.Sprintf(configuration.CacheBusinessKey, businessID)
		_, found, err := cache.Get(key)
		require.NoError(t, err)
		assert.True(t, found)

		// Second read is served from the cache; no further query expected.
		response, err = service.Get(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{businessID})
		require.NoError(t, err)
		assert.Equal(t, "City Vet", response.Business.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should return 404 for an unknown business", func(t *testing.T) {
		service, mock, _ := newBusinessService(t)

		businessID := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "businesses" WHERE id = $1`)).
			WithArgs(businessID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := service.Get(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{businessID})

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.Status)
		assert.Equal(t, []string{apierrors.ErrBusinessNotFound}, apiErr.Codes)
	})
}

func TestBusinessCreate(t *testing.T) {
	t.Run("should purge every cached page and detail after the insert", func(t *testing.T) {
		service, mock, cache := newBusinessService(t)

		// Pre-populate both a list page and a detail entry.
		require.NoError(t, cache.Set(fmt.Sprintf(configuration.CacheBusinessListKey, "", 1, 10), "{}", 60))
		require.NoError(t, cache.Set(fmt.Sprintf(configuration.CacheBusinessKey, uuid.New()), "{}", 60))

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "businesses"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		claims := models.UserClaims{UserID: uuid.New(), Role: models.RoleBusiness}
		response, err := service.Create(zap.NewNop(), claims, uuid.UUIDs{}, models.BusinessCreateBody{
			Name:    "New Groomer",
			Type:    models.BusinessTypeGroomer,
			Address: "2 Side St",
		})
		require.NoError(t, err)
		assert.Equal(t, claims.UserID, response.Business.UserID)

		assert.Contains(t, cache.purgedPrefixes, configuration.CacheBusinessPrefix)
		assert.Empty(t, cache.entries)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBusinessUpdate(t *testing.T) {
	businessID := uuid.New()
	ownerID := uuid.New()

	expectBusinessByID := func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "businesses" WHERE id = $1`)).
			WithArgs(businessID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "address", "user_id"}).
				AddRow(businessID, "City Vet", models.BusinessTypeVet, "1 Main St", ownerID))
	}

	t.Run("should reject a non-owner with 403", func(t *testing.T) {
		service, mock, _ := newBusinessService(t)
		expectBusinessByID(mock)

		claims := models.UserClaims{UserID: uuid.New(), Role: models.RoleBusiness}
		_, err := service.Update(zap.NewNop(), claims, uuid.UUIDs{businessID}, models.BusinessUpdateBody{
			Name: "Hijacked",
		})

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 403, apiErr.Status)
	})

	t.Run("should allow an admin who is not the owner", func(t *testing.T) {
		service, mock, cache := newBusinessService(t)
		expectBusinessByID(mock)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "businesses"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		claims := models.UserClaims{UserID: uuid.New(), Role: models.RoleAdmin}
		response, err := service.Update(zap.NewNop(), claims, uuid.UUIDs{businessID}, models.BusinessUpdateBody{
			Name: "City Vet Clinic",
		})
		require.NoError(t, err)
		assert.Equal(t, "City Vet Clinic", response.Business.Name)

		assert.Contains(t, cache.purgedPrefixes, configuration.CacheBusinessPrefix)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
