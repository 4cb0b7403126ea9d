package meals

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownValue is returned by the Parse functions for literals outside
// the closed set of an enum.
var ErrUnknownValue = errors.New("unrecognized value")

type MealType string

const (
	MealTypeLunch  MealType = "lunch"
	MealTypeDinner MealType = "dinner"
)

func ParseMealType(raw string) (MealType, error) {
	switch MealType(strings.ToLower(strings.TrimSpace(raw))) {
	case MealTypeLunch:
		return MealTypeLunch, nil
	case MealTypeDinner:
		return MealTypeDinner, nil
	}
	return "", fmt.Errorf("meal type %q: %w", raw, ErrUnknownValue)
}

func (m MealType) Valid() bool { return m == MealTypeLunch || m == MealTypeDinner }

// ListingStatus is the lifecycle shared by fingerprints and meal requests.
// Both matched and cancelled are terminal.
type ListingStatus string

const (
	ListingActive    ListingStatus = "active"
	ListingMatched   ListingStatus = "matched"
	ListingCancelled ListingStatus = "cancelled"
)

func ParseListingStatus(raw string) (ListingStatus, error) {
	switch s := ListingStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case ListingActive, ListingMatched, ListingCancelled:
		return s, nil
	}
	return "", fmt.Errorf("listing status %q: %w", raw, ErrUnknownValue)
}

type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchAccepted  MatchStatus = "accepted"
	MatchRejected  MatchStatus = "rejected"
	MatchCompleted MatchStatus = "completed"
)

func ParseMatchStatus(raw string) (MatchStatus, error) {
	switch s := MatchStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case MatchPending, MatchAccepted, MatchRejected, MatchCompleted:
		return s, nil
	}
	return "", fmt.Errorf("match status %q: %w", raw, ErrUnknownValue)
}

// strictMatchTransitions lists the forward moves allowed when strict
// transition checking is enabled.
var strictMatchTransitions = map[MatchStatus][]MatchStatus{
	MatchPending:  {MatchAccepted, MatchRejected},
	MatchAccepted: {MatchCompleted, MatchRejected},
}

// CanTransition reports whether from -> to is a legal strict-mode move.
// Same-status updates are always allowed.
func (from MatchStatus) CanTransition(to MatchStatus) bool {
	if from == to {
		return true
	}
	for _, next := range strictMatchTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ListingKind tells fingerprints and meal requests apart where code handles
// both.
type ListingKind string

const (
	KindFingerprint ListingKind = "fingerprint"
	KindMealRequest ListingKind = "meal_request"
)

func (k ListingKind) Table() string {
	switch k {
	case KindFingerprint:
		return "fingerprint"
	case KindMealRequest:
		return "meal_request"
	}
	return ""
}
