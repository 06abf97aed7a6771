package extractor_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nebenscan/internal/extractor"
)

func TestNewRateLimitError_DefaultsRetryAfter(t *testing.T) {
	err := extractor.NewRateLimitError("openai", errors.New("429"), 0)
	assert.Equal(t, 60*time.Second, err.RetryAfter)
	assert.Equal(t, "openai", err.Provider)
}

func TestNewRateLimitError_KeepsProvidedRetryAfter(t *testing.T) {
	err := extractor.NewRateLimitError("openai", errors.New("429"), 30)
	assert.Equal(t, 30*time.Second, err.RetryAfter)
}

func TestRateLimitError_Unwrap(t *testing.T) {
	base := errors.New("too many requests")
	err := extractor.NewRateLimitError("openai", base, 10)
	assert.ErrorIs(t, err, base)
}

func TestParseRetryAfterHeader_DeltaSeconds(t *testing.T) {
	assert.Equal(t, 30, extractor.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader("-5"))
}

func TestParseRetryAfterHeader_Empty(t *testing.T) {
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader(""))
}

func TestParseRetryAfterHeader_Malformed(t *testing.T) {
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader("soon"))
}

func TestParseRetryAfterHeader_HTTPDate(t *testing.T) {
	future := time.Now().UTC().Add(90 * time.Second).Format(http.TimeFormat)
	secs := extractor.ParseRetryAfterHeader(future)
	assert.InDelta(t, 90, secs, 2)
}

func TestParseRetryAfterHeader_ElapsedHTTPDate(t *testing.T) {
	past := time.Now().UTC().Add(-time.Minute).Format(http.TimeFormat)
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader(past))
}
