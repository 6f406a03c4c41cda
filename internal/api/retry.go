package api

import (
	"context"

	"github.com/cenkalti/backoff/v4"
)

// WithRetry runs op with exponential backoff, retrying at most maxRetries
// times. maxRetries == 0 means a single attempt with no retry,
// matching the pipeline's base behavior where a re-run is an explicit user
// action. The call sites stay sequential; this wrapper only isolates the
// retry policy so dispatch strategies can change without touching it.
func WithRetry(ctx context.Context, maxRetries int, op func() error) error {
	if maxRetries <= 0 {
		return op()
	}
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(maxRetries))
	return backoff.Retry(op, backoff.WithContext(b, ctx))
}
