package meals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MealRequest is a receiver's request for a shared meal.
type MealRequest struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index:idx_meal_request_user_created,priority:1" json:"user_id"`
	MealType           MealType        `gorm:"type:varchar(16);not null;check:chkmealrequestmealtype,meal_type IN ('lunch','dinner')" json:"meal_type"`
	PreferredDate      *datatypes.Date `gorm:"column:preferred_date" json:"preferred_date,omitempty"`
	PreferredStartTime *datatypes.Time `gorm:"column:preferred_start_time" json:"preferred_start_time,omitempty"`
	PreferredEndTime   *datatypes.Time `gorm:"column:preferred_end_time" json:"preferred_end_time,omitempty"`
	Notes              string          `gorm:"type:varchar(500);not null;default:''" json:"notes"`
	Status             ListingStatus   `gorm:"type:varchar(16);not null;index:idx_meal_request_status_created,priority:1;check:chkmealrequeststatus,status IN ('active','matched','cancelled')" json:"status"`
	CreatedAt          time.Time       `gorm:"not null;index:idx_meal_request_user_created,priority:2;index:idx_meal_request_status_created,priority:2" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null" json:"updated_at"`
}

func (MealRequest) TableName() string { return "meal_request" }

func (r *MealRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ListingActive
	}
	r.CreatedAt, r.UpdatedAt = stampUTC(r.CreatedAt, r.UpdatedAt)
	return nil
}

func (r *MealRequest) OwnerID() uuid.UUID { return r.UserID }

func (r *MealRequest) Window() Window {
	return Window{Date: r.PreferredDate, Start: r.PreferredStartTime, End: r.PreferredEndTime}
}
