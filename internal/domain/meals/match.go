package meals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match pairs one fingerprint with one meal request. At most one row may
// exist per (fingerprint_id, meal_request_id).
type Match struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	FingerprintID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:ux_match_pair,priority:1" json:"fingerprint_id"`
	MealRequestID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:ux_match_pair,priority:2" json:"meal_request_id"`
	GiverID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"giver_id"`
	ReceiverID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"receiver_id"`
	MealType      MealType    `gorm:"type:varchar(16);not null;check:chkmatchmealtype,meal_type IN ('lunch','dinner')" json:"meal_type"`
	Status        MatchStatus `gorm:"type:varchar(16);not null;check:chkmatchstatus,status IN ('pending','accepted','rejected','completed')" json:"status"`
	MatchDate     time.Time   `gorm:"not null" json:"match_date"`
	CreatedAt     time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

func (Match) TableName() string { return "meal_match" }

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = MatchPending
	}
	m.CreatedAt, m.UpdatedAt = stampUTC(m.CreatedAt, m.UpdatedAt)
	if m.MatchDate.IsZero() {
		m.MatchDate = m.CreatedAt
	}
	return nil
}

func (m *Match) HasUser(userID uuid.UUID) bool {
	return m != nil && userID != uuid.Nil && (m.GiverID == userID || m.ReceiverID == userID)
}

// OtherUserID returns the counterpart of userID, or uuid.Nil when userID is
// not a participant.
func (m *Match) OtherUserID(userID uuid.UUID) uuid.UUID {
	switch {
	case m == nil:
		return uuid.Nil
	case m.GiverID == userID:
		return m.ReceiverID
	case m.ReceiverID == userID:
		return m.GiverID
	}
	return uuid.Nil
}
