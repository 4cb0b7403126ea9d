package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/data/repos"
	domainagg "github.com/yungbote/payona-backend/internal/domain/aggregates"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"github.com/yungbote/payona-backend/internal/eligibility"
	"github.com/yungbote/payona-backend/internal/observability"
	"github.com/yungbote/payona-backend/internal/platform/logger"
)

// ListingDeps is shared by the fingerprint and meal-request services.
type ListingDeps struct {
	Log          *logger.Logger
	Fingerprints repos.FingerprintRepo
	MealRequests repos.MealRequestRepo
	Users        repos.UserRepo
	Profiles     ProfileProvider
	Policy       *eligibility.Policy
	Matches      domainagg.MatchAggregate
	Metrics      *observability.Metrics
	Now          func() time.Time
}

func (d ListingDeps) withDefaults() ListingDeps {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Policy == nil {
		d.Policy = eligibility.DefaultPolicy()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// ListingInput is the client-supplied part of a fingerprint or meal request.
// Date is YYYY-MM-DD, times are HH:MM; all but MealType may be empty.
type ListingInput struct {
	MealType string
	Date     string
	Start    string
	End      string
	Text     string
}

type parsedListing struct {
	mealType meals.MealType
	window   meals.Window
	text     string
}

func parseListingInput(op, textField string, in ListingInput) (parsedListing, error) {
	mt, err := meals.ParseMealType(in.MealType)
	if err != nil {
		return parsedListing{}, domainagg.NewError(domainagg.CodeValidation, op, "mealType must be lunch or dinner", err)
	}
	w, err := meals.ParseWindow(in.Date, in.Start, in.End)
	if err != nil {
		return parsedListing{}, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	}
	text, err := meals.CleanText(textField, in.Text)
	if err != nil {
		return parsedListing{}, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	}
	return parsedListing{mealType: mt, window: w, text: text}, nil
}

// parseMealTypeFilter accepts an empty filter as "any".
func parseMealTypeFilter(op, raw string) (meals.MealType, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	mt, err := meals.ParseMealType(raw)
	if err != nil {
		return "", domainagg.NewError(domainagg.CodeValidation, op, "mealType must be lunch or dinner", err)
	}
	return mt, nil
}

func requireUser(op string, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeUnauthorized, op, "missing user", nil)
	}
	return nil
}
