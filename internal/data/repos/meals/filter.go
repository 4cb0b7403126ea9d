package meals

import (
	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"gorm.io/gorm"
)

// ListingFilter narrows active listing queries. Zero values mean "any".
type ListingFilter struct {
	MealType      meals.MealType
	ExcludeUserID uuid.UUID
	Limit         int
}

func (f ListingFilter) apply(q *gorm.DB) *gorm.DB {
	if f.MealType != "" {
		q = q.Where("meal_type = ?", f.MealType)
	}
	if f.ExcludeUserID != uuid.Nil {
		q = q.Where("user_id <> ?", f.ExcludeUserID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	return q
}
