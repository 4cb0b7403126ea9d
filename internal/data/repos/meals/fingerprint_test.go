package meals

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/data/repos/testutil"
	types "github.com/yungbote/payona-backend/internal/domain"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
)

func TestFingerprintRepoListings(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewFingerprintRepo(db, testutil.Logger(t))

	alice := testutil.SeedUser(t, ctx, tx, "Alice", "A")
	bob := testutil.SeedUser(t, ctx, tx, "Bob", "B")
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	older := testutil.SeedFingerprint(t, ctx, tx, alice.ID, meals.MealTypeLunch, testutil.FingerprintCreatedAt(base))
	newer := testutil.SeedFingerprint(t, ctx, tx, alice.ID, meals.MealTypeDinner, testutil.FingerprintCreatedAt(base.Add(time.Hour)))
	testutil.SeedFingerprint(t, ctx, tx, alice.ID, meals.MealTypeLunch,
		testutil.FingerprintCreatedAt(base.Add(2*time.Hour)),
		testutil.FingerprintStatus(meals.ListingCancelled))
	bobs := testutil.SeedFingerprint(t, ctx, tx, bob.ID, meals.MealTypeLunch, testutil.FingerprintCreatedAt(base.Add(3*time.Hour)))

	all, err := repo.ListActive(dbc, ListingFilter{})
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListActive: want=3 got=%d", len(all))
	}
	if all[0].ID != bobs.ID || all[2].ID != older.ID {
		t.Fatalf("ListActive: want newest first, got %s..%s", all[0].ID, all[2].ID)
	}

	lunchNotBob, err := repo.ListActive(dbc, ListingFilter{MealType: meals.MealTypeLunch, ExcludeUserID: bob.ID})
	if err != nil {
		t.Fatalf("ListActive(filtered): %v", err)
	}
	if len(lunchNotBob) != 1 || lunchNotBob[0].ID != older.ID {
		t.Fatalf("ListActive(filtered): unexpected %+v", lunchNotBob)
	}

	mineActive, err := repo.ListActiveByUser(dbc, alice.ID)
	if err != nil {
		t.Fatalf("ListActiveByUser: %v", err)
	}
	if len(mineActive) != 2 || mineActive[0].ID != older.ID || mineActive[1].ID != newer.ID {
		t.Fatalf("ListActiveByUser: want creation order, got %+v", mineActive)
	}

	mine, err := repo.ListByUser(dbc, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("ListByUser: want=3 got=%d", len(mine))
	}

	times, err := repo.CreatedTimesByUserSince(dbc, alice.ID, base.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("CreatedTimesByUserSince: %v", err)
	}
	if len(times) != 2 {
		t.Fatalf("CreatedTimesByUserSince: want=2 got=%d", len(times))
	}
}

func TestFingerprintRepoLockAndGet(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewFingerprintRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "Can", "C")
	created, err := repo.Create(dbc, []*types.Fingerprint{{UserID: u.ID, MealType: meals.MealTypeDinner, Description: "extra portion"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created[0].Status != meals.ListingActive {
		t.Fatalf("Create: default status want=active got=%s", created[0].Status)
	}

	locked, err := repo.LockByID(dbc, created[0].ID)
	if err != nil {
		t.Fatalf("LockByID: %v", err)
	}
	if locked == nil || locked.Description != "extra portion" {
		t.Fatalf("LockByID: unexpected %+v", locked)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID(missing): want nil,nil got=%+v,%v", missing, err)
	}
}
