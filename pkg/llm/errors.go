package llm

import "errors"

// Failure kinds surfaced by the draft generator. Each is produced at the
// point of failure; callers map them to HTTP statuses with errors.Is.
var (
	// ErrMissingAPIKey means the provider credential is absent or unusable
	ErrMissingAPIKey = errors.New("llm api key not configured")

	// ErrTimeout means the model did not respond within the hard deadline.
	// Partial output is discarded, never persisted.
	ErrTimeout = errors.New("generation timed out")

	// ErrEmptyResponse means the model returned blank text
	ErrEmptyResponse = errors.New("model returned an empty response")

	// ErrSafetyBlocked means the provider's content filter rejected the
	// prompt or the completion
	ErrSafetyBlocked = errors.New("content blocked by safety filter")

	// ErrRateLimited signals provider-side request throttling
	ErrRateLimited = errors.New("llm rate limit exceeded")

	// ErrQuotaExceeded signals exhausted provider quota
	ErrQuotaExceeded = errors.New("llm quota exceeded")

	// ErrUpstream covers any other provider failure
	ErrUpstream = errors.New("llm request failed")
)
