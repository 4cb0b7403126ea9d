package meals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Fingerprint is a giver's advertised availability to share a meal.
type Fingerprint struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_fingerprint_user_created,priority:1" json:"user_id"`
	MealType      MealType        `gorm:"type:varchar(16);not null;check:chkfingerprintmealtype,meal_type IN ('lunch','dinner')" json:"meal_type"`
	AvailableDate *datatypes.Date `gorm:"column:available_date" json:"available_date,omitempty"`
	StartTime     *datatypes.Time `gorm:"column:start_time" json:"start_time,omitempty"`
	EndTime       *datatypes.Time `gorm:"column:end_time" json:"end_time,omitempty"`
	Description   string          `gorm:"type:varchar(500);not null;default:''" json:"description"`
	Status        ListingStatus   `gorm:"type:varchar(16);not null;index:idx_fingerprint_status_created,priority:1;check:chkfingerprintstatus,status IN ('active','matched','cancelled')" json:"status"`
	CreatedAt     time.Time       `gorm:"not null;index:idx_fingerprint_user_created,priority:2;index:idx_fingerprint_status_created,priority:2" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

func (Fingerprint) TableName() string { return "fingerprint" }

func (f *Fingerprint) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Status == "" {
		f.Status = ListingActive
	}
	f.CreatedAt, f.UpdatedAt = stampUTC(f.CreatedAt, f.UpdatedAt)
	return nil
}

func (f *Fingerprint) OwnerID() uuid.UUID { return f.UserID }

func (f *Fingerprint) Window() Window {
	return Window{Date: f.AvailableDate, Start: f.StartTime, End: f.EndTime}
}

func stampUTC(created, updated time.Time) (time.Time, time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		created = now
	}
	if updated.IsZero() {
		updated = created
	}
	return created.UTC(), updated.UTC()
}
