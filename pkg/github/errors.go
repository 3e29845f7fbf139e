package github

import "errors"

// Failure kinds surfaced by the GitHub adapter. Callers branch on these with
// errors.Is to pick the user-facing status; message text is never inspected.
var (
	// ErrInvalidCommitCount is returned before any network call when the
	// requested commit count is outside [1, MaxCommitCount]
	ErrInvalidCommitCount = errors.New("commit count out of range")

	// ErrRepositoryNotFound maps a 404 from the hosting API
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrAccessDenied maps a 401/403: invalid or insufficient credential
	ErrAccessDenied = errors.New("access to repository denied")

	// ErrRateLimited signals provider quota exhaustion
	ErrRateLimited = errors.New("github rate limit exceeded")

	// ErrUpstream covers any other non-2xx response or network failure
	ErrUpstream = errors.New("github request failed")
)
