package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/petdirectory/api/internal/configuration"
	apierrors "github.com/petdirectory/api/internal/errors"
	"github.com/petdirectory/api/internal/helpers"
	"github.com/petdirectory/api/internal/models"
)

// Authenticate parses the Bearer access token on every route that is not
// listed as public and stores the verified claims in the request context.
func Authenticate(jwtSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if isExcluded(r.URL.Path, r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			accessToken := r.Header.Get("Authorization")
			if accessToken == "" {
				helpers.RespondWithError(w, 401, []string{apierrors.ErrUnauthorized})
				return
			}

			userClaims, err := helpers.ParseAccessToken(jwtSecret, accessToken)
			if err != nil {
				helpers.RespondWithError(w, 401, []string{apierrors.ErrTokenInvalid})
				return
			}

			ctx := context.WithValue(r.Context(), models.UserClaimKey{}, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

func isExcluded(path, method string) bool {
	if exactRules, exists := configuration.AuthRuleExactMatchPath[path]; exists {
		for _, rule := range exactRules {
			if rule.Method == "*" || rule.Method == method {
				return !rule.RequireAuth
			}
		}
	}

	for _, rule := range configuration.AuthRulePrefixMatchPath {
		if strings.HasPrefix(path, rule.Path) {
			if rule.Method == "*" || rule.Method == method {
				return !rule.RequireAuth
			}
		}
	}

	return false
}
