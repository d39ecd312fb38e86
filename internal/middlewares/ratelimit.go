package middlewares

import (
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/petdirectory/api/internal/cache"
	apierrors "github.com/petdirectory/api/internal/errors"
	"github.com/petdirectory/api/internal/helpers"
	"github.com/petdirectory/api/internal/models"

	"go.uber.org/zap"
)

// RateLimit bounds requests per minute per caller. Authenticated callers are
// counted by user id, anonymous ones by client IP (honoring X-Forwarded-For
// only from trusted proxies).
func RateLimit(c cache.ICache, requestsPerMinute int, trustedProxies []string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := callerIdentifier(r, trustedProxies)

			retryAfter, err := c.GetRateLimit(identifier, requestsPerMinute)
			if err != nil {
				GetLogger(r.Context()).Error("Rate limit check failed", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if retryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				helpers.RespondWithError(w, 429, []string{apierrors.ErrRateLimited})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func callerIdentifier(r *http.Request, trustedProxies []string) string {
	if claims, ok := r.Context().Value(models.UserClaimKey{}).(models.UserClaims); ok {
		return claims.UserID.String()
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if slices.Contains(trustedProxies, host) {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			parts := strings.Split(forwarded, ",")
			return strings.TrimSpace(parts[0])
		}
	}

	return host
}
