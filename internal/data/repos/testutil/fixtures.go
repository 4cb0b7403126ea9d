package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/payona-backend/internal/domain"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, name, surname string) *types.User {
	tb.Helper()
	u := &types.User{ID: uuid.New(), Name: name, Surname: surname}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, gender, city, dorm string) *types.Profile {
	tb.Helper()
	p := &types.Profile{
		UserID:    userID,
		Gender:    gender,
		City:      city,
		Dormitory: dorm,
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

// FingerprintOpt mutates a fingerprint before it is inserted.
type FingerprintOpt func(*types.Fingerprint)

func SeedFingerprint(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, mealType meals.MealType, opts ...FingerprintOpt) *types.Fingerprint {
	tb.Helper()
	f := &types.Fingerprint{
		ID:       uuid.New(),
		UserID:   userID,
		MealType: mealType,
		Status:   meals.ListingActive,
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed fingerprint: %v", err)
	}
	return f
}

type MealRequestOpt func(*types.MealRequest)

func SeedMealRequest(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, mealType meals.MealType, opts ...MealRequestOpt) *types.MealRequest {
	tb.Helper()
	r := &types.MealRequest{
		ID:       uuid.New(),
		UserID:   userID,
		MealType: mealType,
		Status:   meals.ListingActive,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed meal request: %v", err)
	}
	return r
}

func SeedMatch(tb testing.TB, ctx context.Context, tx *gorm.DB, fp *types.Fingerprint, mr *types.MealRequest, at time.Time) *types.Match {
	tb.Helper()
	m := &types.Match{
		ID:            uuid.New(),
		FingerprintID: fp.ID,
		MealRequestID: mr.ID,
		GiverID:       fp.UserID,
		ReceiverID:    mr.UserID,
		MealType:      fp.MealType,
		Status:        meals.MatchPending,
		CreatedAt:     at.UTC(),
		UpdatedAt:     at.UTC(),
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed match: %v", err)
	}
	return m
}

func FingerprintCreatedAt(at time.Time) FingerprintOpt {
	return func(f *types.Fingerprint) { f.CreatedAt = at.UTC() }
}

func FingerprintStatus(s meals.ListingStatus) FingerprintOpt {
	return func(f *types.Fingerprint) { f.Status = s }
}

func MealRequestCreatedAt(at time.Time) MealRequestOpt {
	return func(r *types.MealRequest) { r.CreatedAt = at.UTC() }
}

func MealRequestStatus(s meals.ListingStatus) MealRequestOpt {
	return func(r *types.MealRequest) { r.Status = s }
}
