package middlewares

import (
	"net/http"

	apierrors "github.com/petdirectory/api/internal/errors"
	"github.com/petdirectory/api/internal/helpers"
	"github.com/petdirectory/api/internal/models"
)

// AuthorizeRole checks that the authenticated user has at least the required
// role (admin > business > user).
func AuthorizeRole(requiredRole models.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(models.UserClaimKey{}).(models.UserClaims)
			if !ok {
				helpers.RespondWithError(w, 401, []string{apierrors.ErrUnauthorized})
				return
			}

			if !userClaims.Role.HasAtLeast(requiredRole) {
				helpers.RespondWithError(w, 403, []string{apierrors.ErrForbidden})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
