package helpers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/petdirectory/api/internal/configuration"
	"github.com/petdirectory/api/internal/models"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
)

// createToken signs the claims of one token type. Access and refresh tokens
// use distinct secrets, so a refresh token can never pass access verification
// even if the audience check were skipped.
func createToken(jwtSecret string, user *models.User, audience string, expiryMinutes int) (string, error) {
	claims := models.UserClaims{
		UserID: user.ID,
		Aud:    audience,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    configuration.AppName,
			IssuedAt:  &jwt.NumericDate{Time: time.Now()},
			ExpiresAt: &jwt.NumericDate{Time: time.Now().Add(time.Minute * time.Duration(expiryMinutes))},
		},
	}

	if audience == configuration.AudienceAccessToken {
		claims.Email = user.Email
		claims.Role = user.Role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func NewAccessToken(jwtSecret string, user *models.User, expiryMinutes int) (string, error) {
	return createToken(jwtSecret, user, configuration.AudienceAccessToken, expiryMinutes)
}

func NewRefreshToken(jwtRefreshSecret string, user *models.User, expiryMinutes int) (string, error) {
	return createToken(jwtRefreshSecret, user, configuration.AudienceRefreshToken, expiryMinutes)
}

// ParseToken validates signature and expiry only. The requireBearer parameter
// controls whether the "Bearer " prefix is required.
func ParseToken(jwtSecret string, tokenString string, requireBearer bool) (models.UserClaims, error) {
	if requireBearer {
		if !strings.HasPrefix(tokenString, "Bearer ") {
			return models.UserClaims{}, errors.New("invalid token")
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	}

	claims := &models.UserClaims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		},
	)
	if err != nil {
		return models.UserClaims{}, errors.New("invalid token")
	}

	return *claims, nil
}

// ParseAccessToken validates an access token from an Authorization header value.
func ParseAccessToken(jwtSecret string, tokenString string) (models.UserClaims, error) {
	claims, err := ParseToken(jwtSecret, tokenString, true)
	if err != nil {
		return models.UserClaims{}, err
	}

	if claims.Aud != configuration.AudienceAccessToken {
		return models.UserClaims{}, errors.New("invalid access token audience")
	}

	return claims, nil
}

// ParseRefreshToken validates a bare refresh token string. Signature validity
// alone does not make the token current: the session layer still has to
// cross-check the cache-held value.
func ParseRefreshToken(jwtRefreshSecret string, refreshToken string) (models.UserClaims, error) {
	claims, err := ParseToken(jwtRefreshSecret, refreshToken, false)
	if err != nil {
		return models.UserClaims{}, errors.New("invalid refresh token")
	}

	if claims.Aud != configuration.AudienceRefreshToken {
		return models.UserClaims{}, errors.New("invalid refresh token audience")
	}

	return claims, nil
}

func GetUserClaims(c context.Context) (models.UserClaims, error) {
	value, ok := c.Value(models.UserClaimKey{}).(models.UserClaims)
	if !ok {
		return models.UserClaims{}, errors.New("invalid user claims")
	}
	return value, nil
}

func CreateHash(password string) (string, error) {
	argonParams := argon2id.Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  32,
		KeyLength:   32,
	}
	hash, err := argon2id.CreateHash(password, &argonParams)
	if err != nil {
		return "", errors.New("can not create hash password")
	}

	return hash, nil
}
