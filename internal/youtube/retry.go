package youtube

import (
	"errors"

	"google.golang.org/api/googleapi"
)

const maxAttempts = 3

// withRetries calls fn up to maxAttempts times, repeating immediately when it
// fails with a server-side (5xx) API error. Any other error class (4xx,
// network, context cancellation) propagates on the first occurrence.
func withRetries[T any](fn func() (T, error)) (T, error) {
	var zero T
	for attempt := 1; ; attempt++ {
		v, err := fn()
		if err == nil {
			return v, nil
		}
		if attempt < maxAttempts && isServerError(err) {
			continue
		}
		return zero, err
	}
}

// isServerError reports whether err is a 5xx-class Data API error.
func isServerError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500
	}
	return false
}
