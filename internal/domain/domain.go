package domain

import (
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"github.com/yungbote/payona-backend/internal/domain/user"
)

type User = user.User
type Profile = user.Profile

type Fingerprint = meals.Fingerprint
type MealRequest = meals.MealRequest
type Match = meals.Match

type MealType = meals.MealType
type ListingStatus = meals.ListingStatus
type MatchStatus = meals.MatchStatus
type ListingKind = meals.ListingKind

// Models lists every persisted table in migration order.
func Models() []any {
	return []any{
		&User{},
		&Profile{},
		&Fingerprint{},
		&MealRequest{},
		&Match{},
	}
}
