package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/quadrantly/triage-api/internal/domain"
	"github.com/quadrantly/triage-api/internal/llm"
	"github.com/quadrantly/triage-api/internal/store"
	"github.com/quadrantly/triage-api/internal/triage"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing credentials", llm.ErrMissingCredentials, http.StatusBadRequest},
		{"unauthorized", llm.ErrUnauthorized, http.StatusUnauthorized},
		{"rate limited", llm.ErrRateLimited, http.StatusTooManyRequests},
		{"bad request", llm.ErrBadRequest, http.StatusBadRequest},
		{"service unavailable", llm.ErrServiceUnavailable, http.StatusBadGateway},
		{"invalid response", triage.ErrInvalidResponse, http.StatusBadGateway},
		{"batch too large", triage.ErrBatchTooLarge, http.StatusBadRequest},
		{"incomplete assessment", triage.ErrIncompleteAssessment, http.StatusBadRequest},
		{"unknown provider", triage.ErrUnknownProvider, http.StatusBadRequest},
		{"duplicate batch id", triage.ErrDuplicateBatchID, http.StatusBadRequest},
		{"missing batch id", triage.ErrMissingBatchID, http.StatusBadRequest},
		{"empty task name", domain.ErrTaskNameEmpty, http.StatusBadRequest},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestMapErrorToStatusCodeWrapped(t *testing.T) {
	err := fmt.Errorf("%w: got 21 tasks", triage.ErrBatchTooLarge)
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(err))
}

func TestGetSafeErrorMessage(t *testing.T) {
	// Sentinel text is user-renderable and survives wrapping; the wrapping
	// context itself must not leak.
	err := fmt.Errorf("%w: got 21 tasks", triage.ErrBatchTooLarge)
	msg := GetSafeErrorMessage(err)
	assert.Equal(t, triage.ErrBatchTooLarge.Error(), msg)
	assert.NotContains(t, msg, "21")

	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(errors.New("internal detail")))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	err := errors.New(
		"Key: 'Settings.Provider' Error:Field validation for 'Provider' failed on the 'oneof' tag")
	assert.Equal(t, "Invalid Provider: invalid value", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
