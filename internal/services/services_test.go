package services

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/payona-backend/internal/data/aggregates"
	"github.com/yungbote/payona-backend/internal/data/repos"
	"github.com/yungbote/payona-backend/internal/data/repos/testutil"
	types "github.com/yungbote/payona-backend/internal/domain"
	"github.com/yungbote/payona-backend/internal/eligibility"
	"gorm.io/gorm"
)

// fixedNow is a Monday in UTC; tests pass it as the services' clock.
var fixedNow = time.Date(2026, 3, 9, 15, 4, 5, 0, time.UTC)

type harness struct {
	ctx          context.Context
	db           *gorm.DB
	fingerprints FingerprintService
	mealRequests MealRequestService
	matches      MatchService

	fpRepo    repos.FingerprintRepo
	mrRepo    repos.MealRequestRepo
	matchRepo repos.MatchRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	now := func() time.Time { return fixedNow }

	fpRepo := repos.NewFingerprintRepo(db, log)
	mrRepo := repos.NewMealRequestRepo(db, log)
	matchRepo := repos.NewMatchRepo(db, log)
	userRepo := repos.NewUserRepo(db, log)
	profiles := NewProfileProvider(log, repos.NewProfileRepo(db, log))

	agg := aggregates.NewMatchAggregate(aggregates.MatchAggregateDeps{
		Base:         aggregates.BaseDeps{DB: db, Log: log},
		Fingerprints: fpRepo,
		MealRequests: mrRepo,
		Matches:      matchRepo,
		Now:          now,
	})
	listing := ListingDeps{
		Log:          log,
		Fingerprints: fpRepo,
		MealRequests: mrRepo,
		Users:        userRepo,
		Profiles:     profiles,
		Policy:       eligibility.DefaultPolicy(),
		Matches:      agg,
		Now:          now,
	}
	return &harness{
		ctx:          context.Background(),
		db:           db,
		fingerprints: NewFingerprintService(listing),
		mealRequests: NewMealRequestService(listing),
		matches: NewMatchService(MatchServiceDeps{
			DB:           db,
			Log:          log,
			Aggregate:    agg,
			Fingerprints: fpRepo,
			MealRequests: mrRepo,
			Matches:      matchRepo,
			Users:        userRepo,
			Now:          now,
		}),
		fpRepo:    fpRepo,
		mrRepo:    mrRepo,
		matchRepo: matchRepo,
	}
}

// resident seeds a user with a profile.
func (h *harness) resident(t *testing.T, name, surname, gender, city, dorm string) *types.User {
	t.Helper()
	u := testutil.SeedUser(t, h.ctx, h.db, name, surname)
	testutil.SeedProfile(t, h.ctx, h.db, u.ID, gender, city, dorm)
	return u
}
