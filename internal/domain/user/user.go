package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the read model of an account owned by the auth service. Matching
// only needs the id and the display name parts.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Surname   string    `gorm:"not null;column:surname" json:"surname"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	return nil
}

// FullName is "Name Surname".
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(u.Name) + " " + strings.TrimSpace(u.Surname))
}

// ShortName is "Name S." as shown on public listings.
func (u *User) ShortName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.Name)
	surname := []rune(strings.TrimSpace(u.Surname))
	if len(surname) == 0 {
		return name
	}
	return strings.TrimSpace(name + " " + strings.ToUpper(string(surname[0])) + ".")
}
