package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/petdirectory/api/internal/helpers"
	"github.com/petdirectory/api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	jwtSecret := "test-secret-key-for-jwt-signing"

	var capturedClaims models.UserClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedClaims, _ = r.Context().Value(models.UserClaimKey{}).(models.UserClaims)
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticate(jwtSecret)(next)

	t.Run("should let the login endpoint through without a token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should let public directory reads through without a token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/businesses", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should let nested service and review reads through without a token", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/services/business/" + uuid.NewString(),
			"/api/v1/reviews/business/" + uuid.NewString(),
			"/api/v1/businesses/" + uuid.NewString() + "/services",
			"/api/v1/businesses/" + uuid.NewString() + "/reviews",
		} {
			r := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)
			assert.Equal(t, http.StatusOK, w.Code, "expected %s to be public", path)
		}
	})

	t.Run("should require a token for service and review writes", func(t *testing.T) {
		for _, path := range []string{"/api/v1/services", "/api/v1/reviews"} {
			r := httptest.NewRequest(http.MethodPost, path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "expected POST %s to need a token", path)
		}
	})

	t.Run("should require a token for directory writes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/businesses", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("should reject a malformed token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/pets", nil)
		r.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
	})

	t.Run("should reject a refresh token on the access path", func(t *testing.T) {
		user := &models.User{ID: uuid.New(), Email: "test@example.com", Role: models.RoleUser}
		refreshToken, err := helpers.NewRefreshToken(jwtSecret, user, 10080)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/pets", nil)
		r.Header.Set("Authorization", "Bearer "+refreshToken)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should pass verified claims to the next handler", func(t *testing.T) {
		user := &models.User{ID: uuid.New(), Email: "test@example.com", Role: models.RoleBusiness}
		accessToken, err := helpers.NewAccessToken(jwtSecret, user, 15)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/businesses", nil)
		r.Header.Set("Authorization", "Bearer "+accessToken)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user.ID, capturedClaims.UserID)
		assert.Equal(t, user.Email, capturedClaims.Email)
		assert.Equal(t, models.RoleBusiness, capturedClaims.Role)
	})
}
