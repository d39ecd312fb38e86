package helpers

import (
	"testing"

	"github.com/petdirectory/api/internal/models"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: "test@example.com",
		Role:  models.RoleUser,
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	jwtSecret := "test-secret-key-for-jwt-signing"
	user := testUser()

	token, err := NewAccessToken(jwtSecret, user, 15)
	require.NoError(t, err)

	claims, err := ParseAccessToken(jwtSecret, "Bearer "+token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
}

func TestAccessToken_RequiresBearerPrefix(t *testing.T) {
	jwtSecret := "test-secret-key-for-jwt-signing"

	token, err := NewAccessToken(jwtSecret, testUser(), 15)
	require.NoError(t, err)

	_, err = ParseAccessToken(jwtSecret, token)
	assert.Error(t, err)
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
	token, err := NewAccessToken("secret-a", testUser(), 15)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret-b", "Bearer "+token)
	assert.Error(t, err)
}

func TestAccessToken_ExpiredRejected(t *testing.T) {
	jwtSecret := "test-secret-key-for-jwt-signing"

	token, err := NewAccessToken(jwtSecret, testUser(), -1)
	require.NoError(t, err)

	_, err = ParseAccessToken(jwtSecret, "Bearer "+token)
	assert.Error(t, err)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	jwtRefreshSecret := "test-refresh-secret"
	user := testUser()

	token, err := NewRefreshToken(jwtRefreshSecret, user, 10080)
	require.NoError(t, err)

	claims, err := ParseRefreshToken(jwtRefreshSecret, token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	// Refresh tokens carry identity only.
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Role)
}

func TestRefreshToken_NotValidAsAccessToken(t *testing.T) {
	// Even when both token types share a secret, the audience check must
	// keep a refresh token out of the access path and vice versa.
	sharedSecret := "same-secret-for-both"
	user := testUser()

	refreshToken, err := NewRefreshToken(sharedSecret, user, 10080)
	require.NoError(t, err)

	_, err = ParseAccessToken(sharedSecret, "Bearer "+refreshToken)
	assert.Error(t, err)

	accessToken, err := NewAccessToken(sharedSecret, user, 15)
	require.NoError(t, err)

	_, err = ParseRefreshToken(sharedSecret, accessToken)
	assert.Error(t, err)
}

func TestRefreshToken_DistinctSecrets(t *testing.T) {
	token, err := NewRefreshToken("refresh-secret", testUser(), 10080)
	require.NoError(t, err)

	_, err = ParseRefreshToken("access-secret", token)
	assert.Error(t, err)
}

func TestCreateHash_VerifiesWithArgon2id(t *testing.T) {
	hash, err := CreateHash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotContains(t, hash, "correct horse battery staple")

	match, err := argon2id.ComparePasswordAndHash("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = argon2id.ComparePasswordAndHash("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestCreateHash_UniqueSalts(t *testing.T) {
	first, err := CreateHash("password123")
	require.NoError(t, err)

	second, err := CreateHash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
