package store

import (
	"context"
	"errors"
	"time"

	"github.com/idclxvi/identity-store/internal/common"
	"github.com/sethvargo/go-retry"
)

// RetryOnConflict runs fn, retrying only when it fails with
// common.ErrConcurrencyConflict. The store itself never retries a write;
// retry policy belongs to the caller, and fn must re-read fresh state on
// every attempt for the retry to make progress.
func RetryOnConflict(ctx context.Context, attempts uint64, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(attempts, retry.NewConstant(10*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, common.ErrConcurrencyConflict) {
			return retry.RetryableError(err)
		}
		return err
	})
}
