package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/payona-backend/internal/domain/aggregates"
	"github.com/yungbote/payona-backend/internal/domain/meals"
)

func TestCreateMatchReturnsEnrichedView(t *testing.T) {
	h := newHarness(t)
	giver := h.resident(t, "Ayse", "Kaya", "female", "Ankara", "Kız Yurdu")
	receiver := h.resident(t, "Elif", "Demir", "female", "Ankara", "Kız Yurdu")
	fp := testutil.SeedFingerprint(t, h.ctx, h.db, giver.ID, meals.MealTypeLunch)
	mr := testutil.SeedMealRequest(t, h.ctx, h.db, receiver.ID, meals.MealTypeLunch)

	before, err := h.matches.GetByPair(h.ctx, fp.ID, mr.ID)
	if err != nil || before != nil {
		t.Fatalf("pair before match: %+v err=%v", before, err)
	}

	v, err := h.matches.CreateMatch(h.ctx, fp.ID, mr.ID, giver.ID)
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if v.GiverName != "Ayse Kaya" || v.ReceiverName != "Elif Demir" {
		t.Fatalf("names: giver=%q receiver=%q", v.GiverName, v.ReceiverName)
	}
	if v.Status != meals.MatchPending || !v.MatchDate.Equal(fixedNow) {
		t.Fatalf("status=%s matchDate=%s", v.Status, v.MatchDate)
	}

	after, err := h.matches.GetByPair(h.ctx, fp.ID, mr.ID)
	if err != nil || after == nil || after.ID != v.ID {
		t.Fatalf("pair after match: %+v err=%v", after, err)
	}
	again, err := h.matches.CreateMatch(h.ctx, fp.ID, mr.ID, receiver.ID)
	if err != nil || again.ID != v.ID {
		t.Fatalf("repeat CreateMatch: %+v err=%v", again, err)
	}

	feed, err := h.fingerprints.ListEligible(h.ctx, receiver.ID, "")
	if err != nil || len(feed) != 0 {
		t.Fatalf("matched fingerprint must leave the feed: rows=%d err=%v", len(feed), err)
	}
}

func TestGetMyMatchesAndUpdateStatus(t *testing.T) {
	h := newHarness(t)
	a := h.resident(t, "Can", "Yilmaz", "male", "Ankara", "Erkek Yurdu")
	b := h.resident(t, "Emre", "Ok", "male", "Ankara", "Erkek Yurdu")
	c := h.resident(t, "Mert", "Sahin", "male", "Ankara", "Erkek Yurdu")
	m1 := testutil.SeedMatch(t, h.ctx, h.db,
		testutil.SeedFingerprint(t, h.ctx, h.db, a.ID, meals.MealTypeLunch),
		testutil.SeedMealRequest(t, h.ctx, h.db, b.ID, meals.MealTypeLunch),
		fixedNow.Add(-2*time.Hour))
	m2 := testutil.SeedMatch(t, h.ctx, h.db,
		testutil.SeedFingerprint(t, h.ctx, h.db, c.ID, meals.MealTypeDinner),
		testutil.SeedMealRequest(t, h.ctx, h.db, a.ID, meals.MealTypeDinner),
		fixedNow.Add(-time.Hour))

	got, err := h.matches.GetMyMatches(h.ctx, a.ID)
	if err != nil || len(got) != 2 {
		t.Fatalf("GetMyMatches: rows=%d err=%v", len(got), err)
	}
	if got[0].ID != m2.ID || got[1].ID != m1.ID {
		t.Fatalf("want newest first")
	}
	if got[0].GiverName != "Mert Sahin" || got[0].ReceiverName != "Can Yilmaz" {
		t.Fatalf("names: %q %q", got[0].GiverName, got[0].ReceiverName)
	}
	if only, _ := h.matches.GetMyMatches(h.ctx, b.ID); len(only) != 1 {
		t.Fatalf("b has one match, got %d", len(only))
	}

	ok, err := h.matches.UpdateStatus(h.ctx, m1.ID, b.ID, "ACCEPTED")
	if err != nil || !ok {
		t.Fatalf("participant update: ok=%v err=%v", ok, err)
	}
	ok, err = h.matches.UpdateStatus(h.ctx, m1.ID, c.ID, "rejected")
	if err != nil || ok {
		t.Fatalf("outsider update: ok=%v err=%v", ok, err)
	}
	if _, err := h.matches.UpdateStatus(h.ctx, m1.ID, b.ID, "done"); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("unknown status: want validation got=%v", err)
	}
	ok, err = h.matches.UpdateStatus(h.ctx, uuid.New(), b.ID, "accepted")
	if err != nil || ok {
		t.Fatalf("unknown match: ok=%v err=%v", ok, err)
	}
}
