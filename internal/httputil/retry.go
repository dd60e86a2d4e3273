// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides retry helpers shared by the source clients
// and the query orchestrator.
package httputil

import (
	"context"
	"errors"
	"math"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = time.Second

// MaxRetryDelay caps a single backoff wait, including server-requested ones.
var MaxRetryDelay = time.Minute

const defaultMaxRetries = 2

// RetryDelayer is implemented by errors that carry a server-requested
// delay (an HTTP Retry-After header).
type RetryDelayer interface {
	RetryDelay() time.Duration
}

// Backoff returns the wait before retry number attempt (0-based):
// RetryBaseDelay, then doubling.
func Backoff(attempt int) time.Duration {
	d := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
	if d > MaxRetryDelay {
		return MaxRetryDelay
	}
	return d
}

// Retry calls fn until it succeeds, returns an error retryable rejects, or
// maxRetries retries have been spent. A negative maxRetries selects the
// default (2). The wait before each retry is Backoff(attempt), stretched to
// the error's RetryDelay when it asks for longer. If ctx ends during a wait
// Retry returns ctx.Err(); otherwise it returns fn's last error.
func Retry(ctx context.Context, maxRetries int, retryable func(error) bool, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries || retryable == nil || !retryable(err) {
			return err
		}

		wait := Backoff(attempt)
		var rd RetryDelayer
		if errors.As(err, &rd) && rd.RetryDelay() > wait {
			wait = min(rd.RetryDelay(), MaxRetryDelay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
