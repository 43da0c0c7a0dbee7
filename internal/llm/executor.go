package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/quadrantly/triage-api/internal/redact"
)

const (
	// DefaultMaxAttempts is the total number of times a provider call is
	// attempted before giving up.
	DefaultMaxAttempts = 3

	// DefaultBaseDelay is the backoff base: the wait after attempt i is
	// DefaultBaseDelay * 2^i.
	DefaultBaseDelay = time.Second
)

// Executor wraps provider calls with exponential-backoff retries and
// terminal error classification. It is the single place raw provider
// failures are normalized into the user-facing taxonomy, so callers never
// branch on provider identity to interpret an error.
type Executor struct {
	logger      *slog.Logger
	maxAttempts int
	baseDelay   time.Duration
}

// NewExecutor creates an Executor. Non-positive maxAttempts or baseDelay
// fall back to the defaults with a warning, matching how invalid retry
// configuration is handled elsewhere in the service.
func NewExecutor(logger *slog.Logger, maxAttempts int, baseDelay time.Duration) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	if maxAttempts <= 0 {
		logger.Warn("invalid max attempts value, using default",
			"configured", maxAttempts,
			"default", DefaultMaxAttempts)
		maxAttempts = DefaultMaxAttempts
	}

	if baseDelay <= 0 {
		logger.Warn("invalid base delay value, using default",
			"configured", baseDelay,
			"default", DefaultBaseDelay)
		baseDelay = DefaultBaseDelay
	}

	return &Executor{
		logger:      logger,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

// Do runs fn, retrying transient failures with pure exponential backoff
// (baseDelay * 2^attempt, attempt zero-based). A failure carrying a status
// in [400,500) other than 429 stops the loop immediately: retrying a 4xx
// will not change the outcome. When the loop ends without success, the
// last-seen error is classified into the taxonomy in errors.go; errors that
// match no category propagate unchanged so their detail is not lost.
func (e *Executor) Do(ctx context.Context, op string, fn func(context.Context) (string, error)) (string, error) {
	var lastErr error

	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				e.logger.InfoContext(ctx, "provider call succeeded after retry",
					"operation", op,
					"attempt", attempt+1)
			}
			return out, nil
		}

		lastErr = err
		status := StatusCode(err)

		e.logger.WarnContext(ctx, "provider call failed",
			"operation", op,
			"attempt", attempt+1,
			"max_attempts", e.maxAttempts,
			"status", status,
			"error", redact.Error(err))

		if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
			// Client errors other than 429 are permanent.
			break
		}

		if attempt == e.maxAttempts-1 {
			break
		}

		delay := e.baseDelay * (1 << attempt)
		e.logger.InfoContext(ctx, "retrying provider call after delay",
			"operation", op,
			"attempt", attempt+1,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%s cancelled during retry delay: %w", op, ctx.Err())
		}
	}

	return "", e.classify(lastErr)
}

// classify maps the terminal error of a retry loop onto the user-facing
// taxonomy, inspecting both the attached status code and the message text
// (the two providers report quota and permission failures in different
// shapes).
func (e *Executor) classify(err error) error {
	if err == nil {
		// Should not happen: the loop only exits here with an error.
		return ErrUnknown
	}

	status := StatusCode(err)
	msg := strings.ToLower(err.Error())

	switch {
	case status == http.StatusTooManyRequests,
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "resource_exhausted"),
		strings.Contains(msg, "resource exhausted"),
		strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)

	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		strings.Contains(msg, "permission_denied"),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "api key not valid"),
		strings.Contains(msg, "invalid api key"):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)

	case status == http.StatusBadRequest,
		strings.Contains(msg, "invalid_argument"),
		strings.Contains(msg, "invalid argument"):
		return fmt.Errorf("%w: %v", ErrBadRequest, err)

	case status >= 500:
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)

	default:
		return err
	}
}
