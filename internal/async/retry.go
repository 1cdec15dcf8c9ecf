package async

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy controls how a failed load is retried.
type Policy struct {
	// Disabled makes the first failure final.
	Disabled bool
	// MaxRetries bounds the number of retries after the first attempt.
	// Zero means retry until success or cancellation.
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy retries forever with exponential backoff from 250ms to 30s.
func DefaultPolicy() Policy {
	return Policy{
		InitialInterval: 250 * time.Millisecond,
		MaxInterval:     30 * time.Second,
	}
}

// NoRetry returns a policy under which the first failure is final.
func NoRetry() Policy {
	return Policy{Disabled: true}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	b.MaxElapsedTime = 0

	var bo backoff.BackOff = b
	if p.MaxRetries > 0 {
		bo = backoff.WithMaxRetries(bo, p.MaxRetries)
	}
	return backoff.WithContext(bo, ctx)
}

// Retry runs fn until it succeeds, the policy gives up, or ctx is
// cancelled. notify, when non-nil, is called after each failed attempt
// that will be retried. Errors wrapped with backoff.Permanent are never
// retried.
func Retry[T any](ctx context.Context, p Policy, notify func(error, time.Duration), fn func(context.Context) (T, error)) (T, error) {
	var out T
	if p.Disabled {
		return fn(ctx)
	}

	op := func() error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	}

	err := backoff.RetryNotify(op, p.backOff(ctx), notify)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			var zero T
			return zero, cerr
		}
		var zero T
		return zero, err
	}
	return out, nil
}
