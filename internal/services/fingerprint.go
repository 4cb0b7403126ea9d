package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/data/repos"
	types "github.com/yungbote/payona-backend/internal/domain"
	domainagg "github.com/yungbote/payona-backend/internal/domain/aggregates"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"github.com/yungbote/payona-backend/internal/eligibility"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
)

type FingerprintService interface {
	Create(ctx context.Context, userID uuid.UUID, in ListingInput) (*FingerprintView, error)
	// ListEligible returns other users' active fingerprints visible to
	// viewerID, newest first. Viewers without a profile get an empty list.
	ListEligible(ctx context.Context, viewerID uuid.UUID, mealType string) ([]*FingerprintView, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*FingerprintView, error)
	Cancel(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type fingerprintService struct {
	deps ListingDeps
}

func NewFingerprintService(deps ListingDeps) FingerprintService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("service", "FingerprintService")
	return &fingerprintService{deps: deps}
}

func (s *fingerprintService) Create(ctx context.Context, userID uuid.UUID, in ListingInput) (*FingerprintView, error) {
	const op = "Meals.Fingerprint.Create"
	if err := requireUser(op, userID); err != nil {
		return nil, err
	}
	parsed, err := parseListingInput(op, "description", in)
	if err != nil {
		return nil, err
	}
	now := s.deps.Now().UTC()
	row := &types.Fingerprint{
		ID:            uuid.New(),
		UserID:        userID,
		MealType:      parsed.mealType,
		AvailableDate: parsed.window.Date,
		StartTime:     parsed.window.Start,
		EndTime:       parsed.window.End,
		Description:   parsed.text,
		Status:        meals.ListingActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.deps.Fingerprints.Create(dbctx.Context{Ctx: ctx}, []*types.Fingerprint{row}); err != nil {
		s.deps.Log.Error("create fingerprint failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("create fingerprint: %w", err)
	}
	s.deps.Metrics.IncListingCreated(string(meals.KindFingerprint), "user")

	users, err := loadUsers(ctx, s.deps.Users, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	prof, err := s.deps.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return fingerprintView(row, owners{users: users, profiles: profileMap(prof), style: nameShort}), nil
}

func (s *fingerprintService) ListEligible(ctx context.Context, viewerID uuid.UUID, mealType string) ([]*FingerprintView, error) {
	const op = "Meals.Fingerprint.ListEligible"
	if err := requireUser(op, viewerID); err != nil {
		return nil, err
	}
	mt, err := parseMealTypeFilter(op, mealType)
	if err != nil {
		return nil, err
	}
	viewer, err := s.deps.Profiles.GetProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		s.deps.Log.Debug("viewer has no profile, returning empty feed", "viewer_id", viewerID)
		return []*FingerprintView{}, nil
	}
	candidates, err := s.deps.Fingerprints.ListActive(dbctx.Context{Ctx: ctx}, repos.ListingFilter{MealType: mt, ExcludeUserID: viewerID})
	if err != nil {
		return nil, fmt.Errorf("list active fingerprints: %w", err)
	}
	ownerProfiles, err := s.deps.Profiles.GetProfiles(ctx, eligibility.OwnerIDs(candidates))
	if err != nil {
		return nil, err
	}
	visible := eligibility.Filter(s.deps.Policy, viewer, candidates, ownerProfiles)
	users, err := loadUsers(ctx, s.deps.Users, eligibility.OwnerIDs(visible))
	if err != nil {
		return nil, err
	}
	o := owners{users: users, profiles: ownerProfiles, style: nameShort}
	out := make([]*FingerprintView, 0, len(visible))
	for _, f := range visible {
		out = append(out, fingerprintView(f, o))
	}
	return out, nil
}

func (s *fingerprintService) ListMine(ctx context.Context, userID uuid.UUID) ([]*FingerprintView, error) {
	const op = "Meals.Fingerprint.ListMine"
	if err := requireUser(op, userID); err != nil {
		return nil, err
	}
	rows, err := s.deps.Fingerprints.ListByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, fmt.Errorf("list my fingerprints: %w", err)
	}
	users, err := loadUsers(ctx, s.deps.Users, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	prof, err := s.deps.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	o := owners{users: users, profiles: profileMap(prof), style: nameFull}
	out := make([]*FingerprintView, 0, len(rows))
	for _, f := range rows {
		out = append(out, fingerprintView(f, o))
	}
	return out, nil
}

func (s *fingerprintService) Cancel(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res, err := s.deps.Matches.CancelListing(ctx, domainagg.CancelListingInput{
		Kind:         meals.KindFingerprint,
		ListingID:    id,
		ActingUserID: userID,
		At:           s.deps.Now(),
	})
	if err != nil {
		return false, err
	}
	return res.Cancelled, nil
}

func profileMap(p *types.Profile) map[uuid.UUID]*types.Profile {
	if p == nil {
		return nil
	}
	return map[uuid.UUID]*types.Profile{p.UserID: p}
}
