package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// retryClass tells RetryProvider what to do after a failed attempt.
type retryClass int

const (
	// retryNever fails the call immediately.
	retryNever retryClass = iota
	// retryOnce allows a single extra attempt per call.
	retryOnce
	// retryBackoff retries until attempts run out.
	retryBackoff
)

type classified interface {
	retryClass() retryClass
}

// classify returns the retry class of err. Errors from outside this package
// are treated as transient, except context cancellation.
func classify(err error) retryClass {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNever
	}
	var c classified
	if errors.As(err, &c) {
		return c.retryClass()
	}
	return retryBackoff
}

// ErrRateLimit means the provider answered 429. RetryAfter is zero when the
// provider gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("quiz model is rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("quiz model is rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

func (*ErrRateLimit) retryClass() retryClass { return retryBackoff }

// ErrInvalidResponse holds model output that is not JSON or does not match
// the quiz schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("quiz model returned unusable output: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

func (*ErrInvalidResponse) retryClass() retryClass { return retryOnce }

// ErrProviderUnavailable covers server errors, network failures and
// anything the SDK could not classify. Permanent marks client errors such as
// a rejected API key, where another attempt cannot succeed.
type ErrProviderUnavailable struct {
	Permanent bool
	Err       error
}

func (e *ErrProviderUnavailable) Error() string {
	switch {
	case e.Err == nil:
		return "quiz model unavailable"
	case e.Permanent:
		return fmt.Sprintf("quiz model rejected the request: %v", e.Err)
	default:
		return fmt.Sprintf("quiz model unavailable: %v", e.Err)
	}
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

func (e *ErrProviderUnavailable) retryClass() retryClass {
	if e.Permanent {
		return retryNever
	}
	return retryBackoff
}

// ErrMaxTokensExceeded is output cut off by the token limit. A larger
// article gives the same result on retry.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("quiz model ran out of tokens after %d bytes of output", len(e.Content))
}

func (*ErrMaxTokensExceeded) retryClass() retryClass { return retryNever }

// classifyStatus converts an SDK error carrying an HTTP status.
func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status == http.StatusRequestTimeout:
		return &ErrProviderUnavailable{Err: err}
	case status >= 400 && status < 500:
		return &ErrProviderUnavailable{Permanent: true, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
