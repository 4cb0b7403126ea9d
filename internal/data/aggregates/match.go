package aggregates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/data/repos"
	domainagg "github.com/yungbote/payona-backend/internal/domain/aggregates"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
)

type MatchAggregateDeps struct {
	Base  BaseDeps
	Retry RetryPolicy

	Fingerprints repos.FingerprintRepo
	MealRequests repos.MealRequestRepo
	Matches      repos.MatchRepo

	// StrictTransitions rejects match status moves outside
	// meals.MatchStatus.CanTransition.
	StrictTransitions bool
	Now               func() time.Time
}

type matchAggregate struct {
	deps MatchAggregateDeps
}

func NewMatchAggregate(deps MatchAggregateDeps) domainagg.MatchAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.Retry = deps.Retry.withDefaults()
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &matchAggregate{deps: deps}
}

func (a *matchAggregate) Contract() domainagg.Contract {
	return domainagg.MatchAggregateContract
}

func (a *matchAggregate) at(t time.Time) time.Time {
	if t.IsZero() {
		t = a.deps.Now()
	}
	return t.UTC()
}

func (a *matchAggregate) configured() bool {
	return a.deps.Fingerprints != nil && a.deps.MealRequests != nil && a.deps.Matches != nil
}

func (a *matchAggregate) CreateMatch(ctx context.Context, in domainagg.CreateMatchInput) (domainagg.CreateMatchResult, error) {
	const op = "Meals.Match.CreateMatch"
	var out domainagg.CreateMatchResult
	if in.FingerprintID == uuid.Nil || in.MealRequestID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "fingerprint_id and meal_request_id are required", nil)
	}
	if in.ActingUserID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing acting user_id", nil)
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "match aggregate repos not configured", nil)
	}
	at := a.at(in.At)

	out, attempts, err := retryTransient(ctx, a.deps.Retry, func(attempt int) (domainagg.CreateMatchResult, error) {
		if attempt > 1 {
			a.deps.Base.Log.Debug("retrying match creation",
				"fingerprint_id", in.FingerprintID,
				"meal_request_id", in.MealRequestID,
				"attempt", attempt,
			)
		}
		return a.createMatchOnce(ctx, op, in, at)
	})
	out.Attempts = attempts
	if err == nil || !domainagg.Transient(err) {
		return out, err
	}

	// Out of attempts while still racing: whoever won has committed the
	// pair by now, so answer from it rather than report the race.
	existing, lookupErr := a.deps.Matches.GetByPair(dbctx.Context{Ctx: ctx}, in.FingerprintID, in.MealRequestID)
	if lookupErr == nil && existing != nil && existing.HasUser(in.ActingUserID) {
		return domainagg.CreateMatchResult{Match: existing, Attempts: attempts}, nil
	}
	a.deps.Base.Log.Warn("match creation exhausted retries", "error", err, "attempts", attempts)
	return out, domainagg.NewError(domainagg.CodeRetryable, op, "match creation did not settle, try again", err)
}

func (a *matchAggregate) createMatchOnce(ctx context.Context, op string, in domainagg.CreateMatchInput, at time.Time) (domainagg.CreateMatchResult, error) {
	var out domainagg.CreateMatchResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		// Fingerprint first, then meal request: every writer locks in this order.
		fp, err := a.deps.Fingerprints.LockByID(dbc, in.FingerprintID)
		if err != nil {
			return err
		}
		mr, err := a.deps.MealRequests.LockByID(dbc, in.MealRequestID)
		if err != nil {
			return err
		}
		if fp == nil {
			return domainagg.NewError(domainagg.CodeNotEligible, op, fmt.Sprintf("fingerprint not found: %s", in.FingerprintID), nil)
		}
		if mr == nil {
			return domainagg.NewError(domainagg.CodeNotEligible, op, fmt.Sprintf("meal request not found: %s", in.MealRequestID), nil)
		}

		fingerprintIsMine := fp.UserID == in.ActingUserID
		requestIsMine := mr.UserID == in.ActingUserID
		switch {
		case fingerprintIsMine && requestIsMine:
			return domainagg.NewError(domainagg.CodeSelfMatch, op, "both listings belong to the acting user", nil)
		case !fingerprintIsMine && !requestIsMine:
			return domainagg.NewError(domainagg.CodeUnauthorized, op, "acting user owns neither listing", nil)
		}

		existing, err := a.deps.Matches.GetByPair(dbc, fp.ID, mr.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = domainagg.CreateMatchResult{Match: existing}
			return nil
		}

		if fp.Status != meals.ListingActive {
			return domainagg.NewError(domainagg.CodeNotEligible, op, fmt.Sprintf("fingerprint is %s", fp.Status), nil)
		}
		if mr.Status != meals.ListingActive {
			return domainagg.NewError(domainagg.CodeNotEligible, op, fmt.Sprintf("meal request is %s", mr.Status), nil)
		}

		consumed := map[string]any{"status": meals.ListingMatched, "updated_at": at}
		ok, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, meals.KindFingerprint.Table(), fp.ID, []string{string(meals.ListingActive)}, consumed)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "fingerprint changed while matching"); err != nil {
			return err
		}
		ok, err = a.deps.Base.CASGuard.UpdateByStatus(dbc, meals.KindMealRequest.Table(), mr.ID, []string{string(meals.ListingActive)}, consumed)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "meal request changed while matching"); err != nil {
			return err
		}

		m := &meals.Match{
			ID:            uuid.New(),
			FingerprintID: fp.ID,
			MealRequestID: mr.ID,
			GiverID:       fp.UserID,
			ReceiverID:    mr.UserID,
			MealType:      fp.MealType,
			Status:        meals.MatchPending,
			MatchDate:     at,
			CreatedAt:     at,
			UpdatedAt:     at,
		}
		if m.GiverID == m.ReceiverID {
			return InvariantError("giver and receiver must differ")
		}
		if err := a.deps.Matches.Create(dbc, m); err != nil {
			return err
		}
		out = domainagg.CreateMatchResult{Match: m, Created: true}
		return nil
	})
	return out, err
}

func (a *matchAggregate) UpdateStatus(ctx context.Context, in domainagg.UpdateMatchStatusInput) (domainagg.UpdateMatchStatusResult, error) {
	const op = "Meals.Match.UpdateStatus"
	var out domainagg.UpdateMatchStatusResult
	if in.MatchID == uuid.Nil || in.ActingUserID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "match_id and acting user_id are required", nil)
	}
	if _, err := meals.ParseMatchStatus(string(in.Status)); err != nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	}
	if a.deps.Matches == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "match repo not configured", nil)
	}
	at := a.at(in.At)

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		m, err := a.deps.Matches.LockByID(dbc, in.MatchID)
		if err != nil {
			return err
		}
		if m == nil || !m.HasUser(in.ActingUserID) {
			return nil
		}
		if a.deps.StrictTransitions && !m.Status.CanTransition(in.Status) {
			return ConflictError(fmt.Sprintf("match cannot move from %s to %s", m.Status, in.Status))
		}
		if m.Status != in.Status {
			if err := a.deps.Matches.UpdateFields(dbc, m.ID, map[string]interface{}{
				"status":     in.Status,
				"updated_at": at,
			}); err != nil {
				return err
			}
			m.Status = in.Status
			m.UpdatedAt = at
		}
		out = domainagg.UpdateMatchStatusResult{Updated: true, Match: m}
		return nil
	})
	return out, err
}

func (a *matchAggregate) CancelListing(ctx context.Context, in domainagg.CancelListingInput) (domainagg.CancelListingResult, error) {
	const op = "Meals.Match.CancelListing"
	var out domainagg.CancelListingResult
	if in.ListingID == uuid.Nil || in.ActingUserID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "listing id and acting user_id are required", nil)
	}
	table := in.Kind.Table()
	if table == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown listing kind %q", in.Kind), nil)
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "match aggregate repos not configured", nil)
	}
	at := a.at(in.At)

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		owner, status, found, err := a.lockListing(dbc, in.Kind, in.ListingID)
		if err != nil {
			return err
		}
		if !found || owner != in.ActingUserID {
			return nil
		}
		switch status {
		case meals.ListingCancelled:
			out = domainagg.CancelListingResult{Cancelled: true, AlreadyCancelled: true}
			return nil
		case meals.ListingMatched:
			return ConflictError(fmt.Sprintf("%s is already matched", table))
		}
		ok, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, table, in.ListingID, []string{string(meals.ListingActive)}, map[string]any{
			"status":     meals.ListingCancelled,
			"updated_at": at,
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, table+" changed while cancelling"); err != nil {
			return err
		}
		out = domainagg.CancelListingResult{Cancelled: true}
		return nil
	})
	return out, err
}

func (a *matchAggregate) lockListing(dbc dbctx.Context, kind meals.ListingKind, id uuid.UUID) (uuid.UUID, meals.ListingStatus, bool, error) {
	switch kind {
	case meals.KindFingerprint:
		fp, err := a.deps.Fingerprints.LockByID(dbc, id)
		if err != nil || fp == nil {
			return uuid.Nil, "", false, err
		}
		return fp.UserID, fp.Status, true, nil
	case meals.KindMealRequest:
		mr, err := a.deps.MealRequests.LockByID(dbc, id)
		if err != nil || mr == nil {
			return uuid.Nil, "", false, err
		}
		return mr.UserID, mr.Status, true, nil
	}
	return uuid.Nil, "", false, nil
}
