package extractor

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// defaultRetryAfter is used when a 429 carries no usable Retry-After value.
// The queue worker re-polls on its own interval, so this only has to be a
// sane lower bound, not a precise backoff.
const defaultRetryAfter = 60 * time.Second

// RateLimitError indicates an extraction provider returned HTTP 429. Bills
// hitting it go back to the queue instead of failing, up to the configured
// attempt limit.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError, falling back to
// defaultRetryAfter when retryAfterSecs is not positive.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	retryAfter := time.Duration(retryAfterSecs) * time.Second
	if retryAfter <= 0 {
		retryAfter = defaultRetryAfter
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: retryAfter,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Providers send either delta-seconds or an HTTP-date; both forms are
// accepted. Returns 0 for empty, malformed, or already-elapsed values.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}

	if secs, err := strconv.Atoi(val); err == nil {
		if secs < 0 {
			return 0
		}
		return secs
	}

	when, err := http.ParseTime(val)
	if err != nil {
		return 0
	}
	secs := int(time.Until(when).Round(time.Second).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}
