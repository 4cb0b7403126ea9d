package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/payona-backend/internal/data/aggregates"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
)

// FlakyTxRunner wraps a real runner and fails the first FailTimes
// transactions with Err before their body runs.
type FlakyTxRunner struct {
	Inner     aggregates.TxRunner
	Err       error
	FailTimes int

	mu    sync.Mutex
	calls int
}

var _ aggregates.TxRunner = (*FlakyTxRunner)(nil)

func (r *FlakyTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.calls++
	fail := r.calls <= r.FailTimes
	r.mu.Unlock()
	if fail {
		return r.Err
	}
	if r.Inner == nil {
		return fn(dbctx.Context{Ctx: ctx})
	}
	return r.Inner.InTx(ctx, fn)
}

func (r *FlakyTxRunner) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
