package cache

type ICache interface {
	// Get returns the value and whether the key was present.
	Get(key string) (string, bool, error)
	// Set stores a value with a time-to-live in seconds.
	Set(key string, value string, ttlSeconds int) error
	Delete(key string) error
	// DeleteByPrefix removes every key under the given prefix. Used by the
	// write paths to purge all cached pages/searches of a resource kind.
	DeleteByPrefix(prefix string) error

	// GetLoginAttempts returns the current number of counted login attempts
	// for an email within the active window.
	GetLoginAttempts(email string) (int, error)
	// IncrementLoginAttempts counts an attempt and restarts the window TTL.
	IncrementLoginAttempts(email string, ttlSeconds int) error
	// ResetLoginAttempts clears the counter (called on successful login).
	ResetLoginAttempts(email string) error

	// StoreRefreshToken records the single current refresh token for a user,
	// overwriting any previous value (rotation).
	StoreRefreshToken(userID string, token string, ttlSeconds int) error
	// GetRefreshToken returns the stored token, or "" when none is current.
	GetRefreshToken(userID string) (string, error)
	// RevokeRefreshToken deletes the stored token. Idempotent.
	RevokeRefreshToken(userID string) error

	// GetRateLimit counts a request for the identifier and returns a
	// retry-after in seconds when the per-minute budget is exhausted, 0 otherwise.
	GetRateLimit(userIdentifier string, requestsPerMinute int) (int, error)

	Close() error
}
