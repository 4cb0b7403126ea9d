package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/domain/meals"
)

var MatchAggregateContract = Contract{
	Name:             "Meals.MatchAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns listing status transitions and match creation; one match per fingerprint/meal-request pair.",
}

// MatchAggregate is the only writer of listing and match status fields.
//
// Failures carry CodeValidation, CodeNotFound, CodeNotEligible, CodeSelfMatch,
// CodeUnauthorized, CodeConflict or CodeInternal. Races on the same pair are
// retried internally and never surface as CodeConflict from CreateMatch.
type MatchAggregate interface {
	Aggregate

	// CreateMatch pairs a fingerprint with a meal request and consumes both.
	// Repeating the call for an already matched pair returns the existing match.
	CreateMatch(ctx context.Context, in CreateMatchInput) (CreateMatchResult, error)

	// UpdateStatus changes a match status on behalf of one of its participants.
	UpdateStatus(ctx context.Context, in UpdateMatchStatusInput) (UpdateMatchStatusResult, error)

	// CancelListing withdraws an active fingerprint or meal request owned by the caller.
	CancelListing(ctx context.Context, in CancelListingInput) (CancelListingResult, error)
}

type CreateMatchInput struct {
	FingerprintID uuid.UUID
	MealRequestID uuid.UUID
	ActingUserID  uuid.UUID
	At            time.Time
}

type CreateMatchResult struct {
	Match   *meals.Match
	Created bool
	// Attempts is the number of transactions run, including retries.
	Attempts int
}

type UpdateMatchStatusInput struct {
	MatchID      uuid.UUID
	ActingUserID uuid.UUID
	Status       meals.MatchStatus
	At           time.Time
}

type UpdateMatchStatusResult struct {
	Updated bool
	Match   *meals.Match
}

type CancelListingInput struct {
	Kind         meals.ListingKind
	ListingID    uuid.UUID
	ActingUserID uuid.UUID
	At           time.Time
}

type CancelListingResult struct {
	Cancelled bool
	// AlreadyCancelled is set when the listing was cancelled before this call.
	AlreadyCancelled bool
}
