package user

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the 1:1 locality record of a user (dorm info). It is written by
// the account service and only read here.
type Profile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	Gender    string    `gorm:"column:gender;not null;default:''" json:"gender"`
	City      string    `gorm:"column:city;not null;default:'';index" json:"city"`
	Dormitory string    `gorm:"column:dormitory;not null;default:''" json:"dormitory"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string { return "user_profile" }
