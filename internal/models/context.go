package models

// Context keys for values produced by the middleware chain.
type (
	// ValidatedBodyKey holds the decoded and validated request body.
	ValidatedBodyKey struct{}
	// ValidatedQueryKey holds the decoded and validated query parameters.
	ValidatedQueryKey struct{}
	// LoggerKey holds the per-request logger.
	LoggerKey struct{}
)
