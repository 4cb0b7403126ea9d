package aggregates

import (
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/payona-backend/internal/domain/aggregates"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
)

func TestRequireCASSuccess(t *testing.T) {
	if err := RequireCASSuccess(true, "ok"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	err := MapError("op", RequireCASSuccess(false, "stale"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("failed CAS: want conflict got=%v", err)
	}
}

func TestCASGuardUpdatesOnlyAllowedStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := dbctx.Context{Ctx: t.Context(), Tx: tx}
	giver := testutil.SeedUser(t, t.Context(), tx, "Ayse", "Kaya")
	fp := testutil.SeedFingerprint(t, t.Context(), tx, giver.ID, meals.MealTypeLunch)

	g := NewCASGuard(db)
	ok, err := g.UpdateByStatus(ctx, "fingerprint", fp.ID, []string{"active"}, map[string]any{"status": "matched"})
	if err != nil || !ok {
		t.Fatalf("first CAS: ok=%v err=%v", ok, err)
	}
	ok, err = g.UpdateByStatus(ctx, "fingerprint", fp.ID, []string{"active"}, map[string]any{"status": "cancelled"})
	if err != nil || ok {
		t.Fatalf("second CAS: want no-op got ok=%v err=%v", ok, err)
	}
	var status string
	if err := tx.Table("fingerprint").Select("status").Where("id = ?", fp.ID).Scan(&status).Error; err != nil {
		t.Fatalf("read status: %v", err)
	}
	if status != "matched" {
		t.Fatalf("status: want=matched got=%s", status)
	}
}

func TestCASGuardValidatesArgs(t *testing.T) {
	g := NewCASGuard(nil)
	if _, err := g.UpdateByStatus(dbctx.Context{Ctx: t.Context()}, "fingerprint", uuid.New(), []string{"active"}, nil); err == nil {
		t.Fatalf("missing db: expected error")
	}
	db := testutil.DB(t)
	g = NewCASGuard(db)
	if _, err := g.UpdateByStatus(dbctx.Context{Ctx: t.Context()}, "", uuid.New(), []string{"active"}, nil); err == nil {
		t.Fatalf("missing table: expected error")
	}
	if _, err := g.UpdateByStatus(dbctx.Context{Ctx: t.Context()}, "fingerprint", uuid.New(), nil, nil); err == nil {
		t.Fatalf("missing statuses: expected error")
	}
}
