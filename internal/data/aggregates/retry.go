package aggregates

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	domainagg "github.com/yungbote/payona-backend/internal/domain/aggregates"
)

const defaultMaxAttempts = 5

// RetryPolicy bounds how often a transient aggregate write is re-run.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.InitialInterval <= 0 {
		p.InitialInterval = 5 * time.Millisecond
	}
	if p.MaxInterval <= 0 {
		p.MaxInterval = 200 * time.Millisecond
	}
	return p
}

// retryTransient re-runs fn while it fails with a conflict or retryable
// code. Other errors stop the loop immediately. The attempt number passed to
// fn starts at 1.
func retryTransient[T any](ctx context.Context, policy RetryPolicy, fn func(attempt int) (T, error)) (T, int, error) {
	policy = policy.withDefaults()
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.InitialInterval
	b.MaxInterval = policy.MaxInterval

	attempt := 0
	out, err := backoff.Retry(ctx, func() (T, error) {
		attempt++
		res, err := fn(attempt)
		if err != nil && !domainagg.Transient(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(policy.MaxAttempts)))
	return out, attempt, err
}
