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

type MealRequestService interface {
	Create(ctx context.Context, userID uuid.UUID, in ListingInput) (*MealRequestView, error)
	// ListEligible returns other users' active meal requests visible to
	// viewerID, newest first. Viewers without a profile get an empty list.
	ListEligible(ctx context.Context, viewerID uuid.UUID, mealType string) ([]*MealRequestView, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*MealRequestView, error)
	Cancel(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type mealRequestService struct {
	deps ListingDeps
}

func NewMealRequestService(deps ListingDeps) MealRequestService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("service", "MealRequestService")
	return &mealRequestService{deps: deps}
}

func (s *mealRequestService) Create(ctx context.Context, userID uuid.UUID, in ListingInput) (*MealRequestView, error) {
	const op = "Meals.MealRequest.Create"
	if err := requireUser(op, userID); err != nil {
		return nil, err
	}
	parsed, err := parseListingInput(op, "notes", in)
	if err != nil {
		return nil, err
	}
	now := s.deps.Now().UTC()
	row := &types.MealRequest{
		ID:                 uuid.New(),
		UserID:             userID,
		MealType:           parsed.mealType,
		PreferredDate:      parsed.window.Date,
		PreferredStartTime: parsed.window.Start,
		PreferredEndTime:   parsed.window.End,
		Notes:              parsed.text,
		Status:             meals.ListingActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := s.deps.MealRequests.Create(dbctx.Context{Ctx: ctx}, []*types.MealRequest{row}); err != nil {
		s.deps.Log.Error("create meal request failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("create meal request: %w", err)
	}
	s.deps.Metrics.IncListingCreated(string(meals.KindMealRequest), "user")

	users, err := loadUsers(ctx, s.deps.Users, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	prof, err := s.deps.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mealRequestView(row, owners{users: users, profiles: profileMap(prof), style: nameShort}), nil
}

func (s *mealRequestService) ListEligible(ctx context.Context, viewerID uuid.UUID, mealType string) ([]*MealRequestView, error) {
	const op = "Meals.MealRequest.ListEligible"
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
		return []*MealRequestView{}, nil
	}
	candidates, err := s.deps.MealRequests.ListActive(dbctx.Context{Ctx: ctx}, repos.ListingFilter{MealType: mt, ExcludeUserID: viewerID})
	if err != nil {
		return nil, fmt.Errorf("list active meal requests: %w", err)
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
	out := make([]*MealRequestView, 0, len(visible))
	for _, f := range visible {
		out = append(out, mealRequestView(f, o))
	}
	return out, nil
}

func (s *mealRequestService) ListMine(ctx context.Context, userID uuid.UUID) ([]*MealRequestView, error) {
	const op = "Meals.MealRequest.ListMine"
	if err := requireUser(op, userID); err != nil {
		return nil, err
	}
	rows, err := s.deps.MealRequests.ListByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, fmt.Errorf("list my meal requests: %w", err)
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
	out := make([]*MealRequestView, 0, len(rows))
	for _, f := range rows {
		out = append(out, mealRequestView(f, o))
	}
	return out, nil
}

func (s *mealRequestService) Cancel(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res, err := s.deps.Matches.CancelListing(ctx, domainagg.CancelListingInput{
		Kind:         meals.KindMealRequest,
		ListingID:    id,
		ActingUserID: userID,
		At:           s.deps.Now(),
	})
	if err != nil {
		return false, err
	}
	return res.Cancelled, nil
}
