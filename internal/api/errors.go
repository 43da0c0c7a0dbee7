package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/quadrantly/triage-api/internal/domain"
	"github.com/quadrantly/triage-api/internal/llm"
	"github.com/quadrantly/triage-api/internal/store"
	"github.com/quadrantly/triage-api/internal/triage"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Credential errors
	case errors.Is(err, llm.ErrUnauthorized):
		return http.StatusUnauthorized

	// Rate limiting after retries are exhausted
	case errors.Is(err, llm.ErrRateLimited):
		return http.StatusTooManyRequests

	// Upstream provider failures
	case errors.Is(err, llm.ErrServiceUnavailable),
		errors.Is(err, triage.ErrInvalidResponse):
		return http.StatusBadGateway

	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, llm.ErrMissingCredentials),
		errors.Is(err, llm.ErrBadRequest),
		errors.Is(err, triage.ErrBatchTooLarge),
		errors.Is(err, triage.ErrIncompleteAssessment),
		errors.Is(err, triage.ErrUnknownProvider),
		errors.Is(err, triage.ErrDuplicateBatchID),
		errors.Is(err, triage.ErrMissingBatchID),
		errors.Is(err, domain.ErrTaskNameEmpty),
		errors.Is(err, domain.ErrInvalidQuadrant),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. The orchestration sentinels carry user-renderable
// text already; everything else collapses to a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, llm.ErrMissingCredentials),
		errors.Is(err, llm.ErrUnauthorized),
		errors.Is(err, llm.ErrRateLimited),
		errors.Is(err, llm.ErrBadRequest),
		errors.Is(err, llm.ErrServiceUnavailable),
		errors.Is(err, triage.ErrInvalidResponse),
		errors.Is(err, triage.ErrBatchTooLarge),
		errors.Is(err, triage.ErrIncompleteAssessment),
		errors.Is(err, triage.ErrUnknownProvider),
		errors.Is(err, triage.ErrDuplicateBatchID),
		errors.Is(err, triage.ErrMissingBatchID):
		return sentinelMessage(err)

	case errors.Is(err, domain.ErrTaskNameEmpty):
		return "Task name is required"

	case errors.Is(err, domain.ErrInvalidQuadrant):
		return "Invalid quadrant value"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	default:
		return "An unexpected error occurred"
	}
}

// sentinelMessage walks to the sentinel at the root of the chain so wrapping
// context (attempt counts, task ids) stays out of the client response.
func sentinelMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'Settings.Provider' Error:Field validation
		// for 'Provider' failed on the 'oneof' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "oneof":
		return "invalid value"
	case "gte", "min":
		return "value too small"
	case "lte", "max":
		return "value too large"
	default:
		return "validation failed"
	}
}
