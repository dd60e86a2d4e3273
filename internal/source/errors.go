// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/citecheck/pkg/types"
)

// Source-level failures.
var (
	// ErrRateLimited indicates the source refused the request for rate reasons.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound indicates the identifier is unknown to the source.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates a network failure, timeout, or server error.
	ErrUnavailable = errors.New("source unavailable")

	// ErrUnsupported indicates the source cannot serve this kind of lookup.
	ErrUnsupported = errors.New("lookup not supported")
)

// Error carries the failing source and HTTP details around a sentinel.
type Error struct {
	Source     types.SourceID
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v (HTTP %d)", e.Err, e.StatusCode)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// RetryDelay returns the server-requested delay before the next attempt.
func (e *Error) RetryDelay() time.Duration { return e.RetryAfter }

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNotFound returns true if the source does not know the identifier.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable returns true for network, timeout, and server failures.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsTransient returns true if retrying the same request may succeed.
func IsTransient(err error) bool {
	return IsRateLimited(err) || IsUnavailable(err)
}
