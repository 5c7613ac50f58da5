package gitlab

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUserNotFound indicates that no user matched the requested username.
var ErrUserNotFound = errors.New("user not found")

type statusError struct {
	StatusCode int
	Err        error
}

func (e *statusError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("http status %d: %v", e.StatusCode, e.Err)
}

func (e *statusError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewStatusError builds an error carrying an HTTP status code, so
// callers can classify it with the Is* helpers.
func NewStatusError(statusCode int, err error) error {
	return &statusError{StatusCode: statusCode, Err: err}
}

// StatusCode extracts the wrapped HTTP status code when available.
func StatusCode(err error) (int, bool) {
	var stErr *statusError
	if errors.As(err, &stErr) {
		return stErr.StatusCode, true
	}
	return 0, false
}

// IsRateLimitError reports whether an error is a GitLab rate limit failure.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	var stErr *statusError
	if errors.As(err, &stErr) {
		if stErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		if stErr.StatusCode == http.StatusForbidden && looksLikeRateLimitError(stErr.Err) {
			return true
		}
	}

	return looksLikeRateLimitError(err)
}

// IsAuthError reports whether an error is an authentication or authorization failure.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if IsRateLimitError(err) {
		return false
	}

	if status, ok := StatusCode(err); ok {
		return status == http.StatusUnauthorized || status == http.StatusForbidden
	}

	text := strings.ToLower(err.Error())
	return strings.Contains(text, "status 401") ||
		strings.Contains(text, "status 403") ||
		strings.Contains(text, "unauthorized") ||
		strings.Contains(text, "forbidden")
}

// IsNotFoundError reports whether an error is a missing resource failure.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUserNotFound) {
		return true
	}
	status, ok := StatusCode(err)
	return ok && status == http.StatusNotFound
}

func looksLikeRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	text := strings.ToLower(err.Error())
	return strings.Contains(text, "rate limit")
}
