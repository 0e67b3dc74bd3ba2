package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError_Error(t *testing.T) {
	err := &FetchError{URL: "https://ex.com/a", StatusCode: 404}
	assert.Contains(t, err.Error(), "https://ex.com/a")
	assert.Contains(t, err.Error(), "404")

	err = &FetchError{URL: "https://ex.com/b", Reason: "connection refused"}
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsSecurityBreach(t *testing.T) {
	breach := &SecurityBreachError{Reason: "prompt_extraction"}
	assert.True(t, IsSecurityBreach(breach))
	assert.True(t, IsSecurityBreach(fmt.Errorf("mapping query: %w", breach)))
	assert.False(t, IsSecurityBreach(errors.New("plain error")))
	assert.False(t, IsSecurityBreach(&EngineUnavailableError{Cause: errors.New("timeout")}))
}

func TestIsEngineUnavailable_Unwrap(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &EngineUnavailableError{Cause: cause}

	assert.True(t, IsEngineUnavailable(err))
	assert.ErrorIs(t, err, cause)
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "context"))

	inner := &ExtractionError{URL: "https://ex.com", Message: "bad html"}
	wrapped := WrapError(inner, "analyzing site")
	assert.Contains(t, wrapped.Error(), "analyzing site")
	assert.True(t, IsExtraction(wrapped))
}
