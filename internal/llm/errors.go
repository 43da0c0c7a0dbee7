package llm

import (
	"errors"
	"fmt"
)

// Classified errors surfaced to callers. The message text is part of the
// UX contract: handlers render these directly to the end user.
var (
	// ErrMissingCredentials is returned when no API key is available for
	// the selected provider. Fatal for the call; never retried.
	ErrMissingCredentials = errors.New(
		"no API key configured for the selected AI provider; add one in settings")

	// ErrRateLimited is returned after retries are exhausted on quota or
	// 429 failures.
	ErrRateLimited = errors.New(
		"the AI service is rate limiting requests; wait a moment and try again")

	// ErrUnauthorized is returned for invalid or insufficiently privileged
	// credentials.
	ErrUnauthorized = errors.New(
		"the AI service rejected the configured API key; check your credentials in settings")

	// ErrBadRequest is returned for 400-class failures reflecting a
	// malformed request.
	ErrBadRequest = errors.New(
		"the AI service rejected the request as malformed")

	// ErrServiceUnavailable is returned after retries are exhausted on
	// 5xx failures.
	ErrServiceUnavailable = errors.New(
		"the AI service is temporarily unavailable; try again later")

	// ErrUnknown is the defensive branch for a retry loop that ends with
	// no error captured at all.
	ErrUnknown = errors.New("unknown error while calling the AI service")
)

// RequestError is the normalized failure shape both provider adapters
// report. StatusCode is zero when no HTTP status is known (for example a
// connection failure), which the executor treats as retryable.
type RequestError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s request failed with status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code attached to the failure, or zero
// when none is known.
func (e *RequestError) HTTPStatus() int {
	return e.StatusCode
}

// StatusCode extracts an HTTP-like status code from an error chain. It
// checks the adapters' RequestError first, then anything else exposing an
// HTTPStatus method. Returns zero when no status is attached.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}

	var coded interface{ HTTPStatus() int }
	if errors.As(err, &coded) {
		return coded.HTTPStatus()
	}

	return 0
}
