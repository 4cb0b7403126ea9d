package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	types "github.com/yungbote/payona-backend/internal/domain"
	domainagg "github.com/yungbote/payona-backend/internal/domain/aggregates"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AutoMatchMarker is written into the description or notes of every record
// the auto-matcher creates.
const AutoMatchMarker = "Auto-generated by auto-match"

const (
	autoMatchStartHour = 12
	autoMatchEndHour   = 14
)

type autoMatchScenario string

const (
	scenarioMineGiveTheirsRequest autoMatchScenario = "my_fingerprint_their_request"
	scenarioMineRequestTheirsGive autoMatchScenario = "my_request_their_fingerprint"
	scenarioSynthesizeRequest     autoMatchScenario = "synthesize_their_request"
	scenarioSynthesizeFingerprint autoMatchScenario = "synthesize_their_fingerprint"
	scenarioSynthesizeBoth        autoMatchScenario = "synthesize_both"
)

type activeListings struct {
	myFingerprints    []*types.Fingerprint
	myRequests        []*types.MealRequest
	theirFingerprints []*types.Fingerprint
	theirRequests     []*types.MealRequest
}

func (s *matchService) AutoMatch(ctx context.Context, actingUserID, otherUserID uuid.UUID, mealType string) (_ *MatchView, err error) {
	ctx, span := startSpan(ctx, "MatchService.AutoMatch", attribute.String("meal_type", mealType))
	defer func() { endSpan(span, err) }()

	const op = "Meals.Match.AutoMatch"
	if err := requireUser(op, actingUserID); err != nil {
		return nil, err
	}
	if otherUserID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "otherUserId is required", nil)
	}
	if actingUserID == otherUserID {
		return nil, domainagg.NewError(domainagg.CodeSelfMatch, op, "cannot auto-match with yourself", nil)
	}
	mt := meals.MealTypeLunch
	if mealType != "" {
		parsed, perr := meals.ParseMealType(mealType)
		if perr != nil {
			return nil, domainagg.NewError(domainagg.CodeValidation, op, "mealType must be lunch or dinner", perr)
		}
		mt = parsed
	}
	other, err := s.users.GetByID(dbctx.Context{Ctx: ctx}, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("load other user: %w", err)
	}
	if other == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "other user not found", nil)
	}

	lists, err := s.loadActiveListings(ctx, actingUserID, otherUserID)
	if err != nil {
		return nil, err
	}
	fingerprintID, mealRequestID, scenario, err := s.resolvePair(ctx, actingUserID, otherUserID, mt, lists)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("scenario", string(scenario)))
	s.log.Debug("auto-match resolved pair",
		"acting_user_id", actingUserID,
		"other_user_id", otherUserID,
		"scenario", scenario,
	)
	return s.createMatch(ctx, fingerprintID, mealRequestID, actingUserID, "auto")
}

func (s *matchService) loadActiveListings(ctx context.Context, me, them uuid.UUID) (activeListings, error) {
	var out activeListings
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}
	g.Go(func() (err error) {
		out.myFingerprints, err = s.fingerprints.ListActiveByUser(dbc, me)
		return err
	})
	g.Go(func() (err error) {
		out.myRequests, err = s.mealRequests.ListActiveByUser(dbc, me)
		return err
	})
	g.Go(func() (err error) {
		out.theirFingerprints, err = s.fingerprints.ListActiveByUser(dbc, them)
		return err
	})
	g.Go(func() (err error) {
		out.theirRequests, err = s.mealRequests.ListActiveByUser(dbc, them)
		return err
	})
	if err := g.Wait(); err != nil {
		return activeListings{}, fmt.Errorf("load active listings: %w", err)
	}
	return out, nil
}

func (s *matchService) resolvePair(ctx context.Context, me, them uuid.UUID, mt meals.MealType, l activeListings) (uuid.UUID, uuid.UUID, autoMatchScenario, error) {
	switch {
	case len(l.myFingerprints) > 0 && len(l.theirRequests) > 0:
		fp := preferMealType(l.myFingerprints, mt, func(f *types.Fingerprint) meals.MealType { return f.MealType })
		mr := preferMealType(l.theirRequests, mt, func(r *types.MealRequest) meals.MealType { return r.MealType })
		return fp.ID, mr.ID, scenarioMineGiveTheirsRequest, nil

	case len(l.myRequests) > 0 && len(l.theirFingerprints) > 0:
		mr := preferMealType(l.myRequests, mt, func(r *types.MealRequest) meals.MealType { return r.MealType })
		fp := preferMealType(l.theirFingerprints, mt, func(f *types.Fingerprint) meals.MealType { return f.MealType })
		return fp.ID, mr.ID, scenarioMineRequestTheirsGive, nil

	case len(l.myFingerprints) > 0:
		fp := preferMealType(l.myFingerprints, mt, func(f *types.Fingerprint) meals.MealType { return f.MealType })
		mr := s.synthesizedRequest(them, fp.MealType, fp.Window())
		if err := s.persistSynthesized(ctx, nil, mr); err != nil {
			return uuid.Nil, uuid.Nil, "", err
		}
		return fp.ID, mr.ID, scenarioSynthesizeRequest, nil

	case len(l.myRequests) > 0:
		mr := preferMealType(l.myRequests, mt, func(r *types.MealRequest) meals.MealType { return r.MealType })
		fp := s.synthesizedFingerprint(them, mr.MealType, mr.Window())
		if err := s.persistSynthesized(ctx, fp, nil); err != nil {
			return uuid.Nil, uuid.Nil, "", err
		}
		return fp.ID, mr.ID, scenarioSynthesizeFingerprint, nil
	}

	w := s.defaultWindow()
	fp := s.synthesizedFingerprint(me, mt, w)
	mr := s.synthesizedRequest(them, mt, w)
	if err := s.persistSynthesized(ctx, fp, mr); err != nil {
		return uuid.Nil, uuid.Nil, "", err
	}
	return fp.ID, mr.ID, scenarioSynthesizeBoth, nil
}

// preferMealType returns the first listing of the requested meal type, or the
// first listing when none matches. rows must not be empty.
func preferMealType[T any](rows []T, mt meals.MealType, mealTypeOf func(T) meals.MealType) T {
	for _, r := range rows {
		if mealTypeOf(r) == mt {
			return r
		}
	}
	return rows[0]
}

// defaultWindow is tomorrow (UTC) from 12:00 to 14:00.
func (s *matchService) defaultWindow() meals.Window {
	tomorrow := meals.DateOf(s.now().UTC().AddDate(0, 0, 1))
	return meals.Window{
		Date:  &tomorrow,
		Start: meals.NewClock(autoMatchStartHour, 0),
		End:   meals.NewClock(autoMatchEndHour, 0),
	}
}

func (s *matchService) synthesizedFingerprint(owner uuid.UUID, mt meals.MealType, w meals.Window) *types.Fingerprint {
	now := s.now().UTC()
	return &types.Fingerprint{
		ID:            uuid.New(),
		UserID:        owner,
		MealType:      mt,
		AvailableDate: copyDate(w.Date),
		StartTime:     copyClock(w.Start),
		EndTime:       copyClock(w.End),
		Description:   AutoMatchMarker,
		Status:        meals.ListingActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *matchService) synthesizedRequest(owner uuid.UUID, mt meals.MealType, w meals.Window) *types.MealRequest {
	now := s.now().UTC()
	return &types.MealRequest{
		ID:                 uuid.New(),
		UserID:             owner,
		MealType:           mt,
		PreferredDate:      copyDate(w.Date),
		PreferredStartTime: copyClock(w.Start),
		PreferredEndTime:   copyClock(w.End),
		Notes:              AutoMatchMarker,
		Status:             meals.ListingActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// persistSynthesized writes the non-nil records in one transaction. They stay
// in place even if the following CreateMatch fails.
func (s *matchService) persistSynthesized(ctx context.Context, fp *types.Fingerprint, mr *types.MealRequest) error {
	write := func(dbc dbctx.Context) error {
		if fp != nil {
			if _, err := s.fingerprints.Create(dbc, []*types.Fingerprint{fp}); err != nil {
				return fmt.Errorf("synthesize fingerprint: %w", err)
			}
		}
		if mr != nil {
			if _, err := s.mealRequests.Create(dbc, []*types.MealRequest{mr}); err != nil {
				return fmt.Errorf("synthesize meal request: %w", err)
			}
		}
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return write(dbctx.Context{Ctx: ctx, Tx: tx})
		})
	} else {
		err = write(dbctx.Context{Ctx: ctx})
	}
	if err != nil {
		return err
	}
	if fp != nil {
		s.metrics.IncListingCreated(string(meals.KindFingerprint), "auto")
	}
	if mr != nil {
		s.metrics.IncListingCreated(string(meals.KindMealRequest), "auto")
	}
	return nil
}

func copyDate(d *datatypes.Date) *datatypes.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func copyClock(t *datatypes.Time) *datatypes.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

