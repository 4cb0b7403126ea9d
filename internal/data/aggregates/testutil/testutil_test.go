package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/payona-backend/internal/platform/dbctx"
)

func TestHooksRecorderStatusCounts(t *testing.T) {
	h := &HooksRecorder{}
	h.ObserveOperation("Meals.Match.CreateMatch", "success", time.Millisecond)
	h.ObserveOperation("Meals.Match.CreateMatch", "conflict", time.Millisecond)
	h.ObserveOperation("Meals.Match.CreateMatch", "success", time.Millisecond)
	h.ObserveOperation("Meals.Match.UpdateStatus", "success", time.Millisecond)
	h.IncConflict("Meals.Match.CreateMatch")

	got := h.StatusCounts("Meals.Match.CreateMatch")
	if got["success"] != 2 || got["conflict"] != 1 {
		t.Fatalf("status counts: got=%v", got)
	}
	if len(h.Conflicts) != 1 {
		t.Fatalf("conflicts: want=1 got=%d", len(h.Conflicts))
	}
}

func TestFlakyTxRunnerFailsThenRuns(t *testing.T) {
	boom := errors.New("database is locked")
	r := &FlakyTxRunner{Err: boom, FailTimes: 2}
	ran := 0
	body := func(dbctx.Context) error { ran++; return nil }

	for i := 0; i < 2; i++ {
		if err := r.InTx(context.Background(), body); !errors.Is(err, boom) {
			t.Fatalf("call %d: want injected error got=%v", i+1, err)
		}
	}
	if err := r.InTx(context.Background(), body); err != nil {
		t.Fatalf("third call: %v", err)
	}
	if ran != 1 || r.Calls() != 3 {
		t.Fatalf("ran=%d calls=%d", ran, r.Calls())
	}
}
