package configuration

const AppName = "petdirectory"

// JWT audience constants for token type separation.
const (
	AudienceAccessToken  = "app:*"
	AudienceRefreshToken = "auth:refresh"
)

// Token expiry defaults (in minutes).
const (
	AccessTokenExpiry  = 15
	RefreshTokenExpiry = 10080 // 7 days
)

// Login guard defaults. The attempt window is a sliding-reset TTL: every
// counted attempt restarts the countdown.
const (
	LoginMaxAttempts   = 5
	LoginAttemptTTLSec = 300
)

// CacheEntryTTLSec bounds how long a cached list/detail response may be served.
const CacheEntryTTLSec = 60

// Cache key formats. Every key of a resource kind lives under a prefix that a
// single pattern-delete can purge; detail keys deliberately share the list
// prefix so one purge covers both.
const (
	CacheRefreshTokenKey  = "refresh_token:%s"  //nolint:gosec // key format, not a credential
	CacheLoginAttemptsKey = "login_attempts:%s"

	CacheBusinessListKey = "businesses:%s:page:%d:limit:%d"
	CacheBusinessKey     = "businesses:id:%s"
	CacheBusinessPrefix  = "businesses:"

	CacheServiceListKey = "services:%s:page:%d:limit:%d"
	CacheServicePrefix  = "services:%s:"

	CacheReviewListKey = "reviews:%s:page:%d:limit:%d"
	CacheReviewPrefix  = "reviews:%s:"

	CachePetListKey = "pets:%s:page:%d:limit:%d"
	CachePetPrefix  = "pets:%s:"

	CacheAppRateLimitKey = "app:ratelimit:%s"
)

// Pagination defaults for list reads.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// AuthRule describes whether a path requires an access token.
type AuthRule struct {
	Method      string
	Path        string
	RequireAuth bool
}

// AuthRuleExactMatchPath lists endpoints that bypass authentication entirely.
var AuthRuleExactMatchPath = map[string][]AuthRule{
	"/api/v1/auth/register": {{Method: "POST", RequireAuth: false}},
	"/api/v1/auth/login":    {{Method: "POST", RequireAuth: false}},
	"/api/v1/auth/refresh":  {{Method: "POST", RequireAuth: false}},
}

// AuthRulePrefixMatchPath lists path prefixes with method-scoped bypasses.
// Directory reads are public; every mutation requires a token.
var AuthRulePrefixMatchPath = []AuthRule{
	{Method: "GET", Path: "/api/v1/businesses", RequireAuth: false},
	{Method: "GET", Path: "/api/v1/services/business", RequireAuth: false},
	{Method: "GET", Path: "/api/v1/reviews/business", RequireAuth: false},
}

var ArrayConfigFields = []string{
	"app.allowed_origins",
	"app.trusted_proxies",
	"cache.redis.hosts",
	"cache.valkey.hosts",
}

var ConfigFileSearchPaths = []string{
	"./config.yaml",
	"templates/config.yaml",
}
