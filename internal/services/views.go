package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/data/repos"
	types "github.com/yungbote/payona-backend/internal/domain"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
)

// FingerprintView is a fingerprint as shown to clients.
type FingerprintView struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"userId"`
	UserName      string              `json:"userName"`
	UserGender    *string             `json:"userGender"`
	UserDorm      *string             `json:"userDorm"`
	MealType      meals.MealType      `json:"mealType"`
	AvailableDate *string             `json:"availableDate"`
	StartTime     *string             `json:"startTime"`
	EndTime       *string             `json:"endTime"`
	Description   *string             `json:"description"`
	Status        meals.ListingStatus `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type MealRequestView struct {
	ID                 uuid.UUID           `json:"id"`
	UserID             uuid.UUID           `json:"userId"`
	UserName           string              `json:"userName"`
	UserGender         *string             `json:"userGender"`
	UserDorm           *string             `json:"userDorm"`
	MealType           meals.MealType      `json:"mealType"`
	PreferredDate      *string             `json:"preferredDate"`
	PreferredStartTime *string             `json:"preferredStartTime"`
	PreferredEndTime   *string             `json:"preferredEndTime"`
	Notes              *string             `json:"notes"`
	Status             meals.ListingStatus `json:"status"`
	CreatedAt          time.Time           `json:"createdAt"`
}

type MatchView struct {
	ID            uuid.UUID         `json:"id"`
	FingerprintID uuid.UUID         `json:"fingerprintId"`
	MealRequestID uuid.UUID         `json:"mealRequestId"`
	GiverID       uuid.UUID         `json:"giverId"`
	GiverName     string            `json:"giverName"`
	ReceiverID    uuid.UUID         `json:"receiverId"`
	ReceiverName  string            `json:"receiverName"`
	MealType      meals.MealType    `json:"mealType"`
	Status        meals.MatchStatus `json:"status"`
	MatchDate     time.Time         `json:"matchDate"`
}

// nameStyle picks how owner names are rendered. Discovery feeds abbreviate
// the surname; a user's own records show it in full.
type nameStyle int

const (
	nameShort nameStyle = iota
	nameFull
)

// owners carries the users and profiles needed to render a batch of views.
// Absent entries render as an empty name and null gender/dorm.
type owners struct {
	users    map[uuid.UUID]*types.User
	profiles map[uuid.UUID]*types.Profile
	style    nameStyle
}

func (o owners) name(id uuid.UUID) string {
	u := o.users[id]
	if u == nil {
		return ""
	}
	if o.style == nameFull {
		return u.FullName()
	}
	return u.ShortName()
}

func (o owners) gender(id uuid.UUID) *string {
	if p := o.profiles[id]; p != nil && p.Gender != "" {
		return strPtr(p.Gender)
	}
	return nil
}

func (o owners) dorm(id uuid.UUID) *string {
	if p := o.profiles[id]; p != nil && p.Dormitory != "" {
		return strPtr(p.Dormitory)
	}
	return nil
}

func loadUsers(ctx context.Context, userRepo repos.UserRepo, ids []uuid.UUID) (map[uuid.UUID]*types.User, error) {
	out := make(map[uuid.UUID]*types.User, len(ids))
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := userRepo.GetByIDs(dbctx.Context{Ctx: ctx}, ids)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for _, u := range rows {
		if u != nil {
			out[u.ID] = u
		}
	}
	return out, nil
}

func fingerprintView(f *types.Fingerprint, o owners) *FingerprintView {
	return &FingerprintView{
		ID:            f.ID,
		UserID:        f.UserID,
		UserName:      o.name(f.UserID),
		UserGender:    o.gender(f.UserID),
		UserDorm:      o.dorm(f.UserID),
		MealType:      f.MealType,
		AvailableDate: optional(meals.FormatDate(f.AvailableDate)),
		StartTime:     optional(meals.FormatClock(f.StartTime)),
		EndTime:       optional(meals.FormatClock(f.EndTime)),
		Description:   optional(f.Description),
		Status:        f.Status,
		CreatedAt:     f.CreatedAt,
	}
}

func mealRequestView(r *types.MealRequest, o owners) *MealRequestView {
	return &MealRequestView{
		ID:                 r.ID,
		UserID:             r.UserID,
		UserName:           o.name(r.UserID),
		UserGender:         o.gender(r.UserID),
		UserDorm:           o.dorm(r.UserID),
		MealType:           r.MealType,
		PreferredDate:      optional(meals.FormatDate(r.PreferredDate)),
		PreferredStartTime: optional(meals.FormatClock(r.PreferredStartTime)),
		PreferredEndTime:   optional(meals.FormatClock(r.PreferredEndTime)),
		Notes:              optional(r.Notes),
		Status:             r.Status,
		CreatedAt:          r.CreatedAt,
	}
}

func matchView(m *types.Match, users map[uuid.UUID]*types.User) *MatchView {
	if m == nil {
		return nil
	}
	o := owners{users: users, style: nameFull}
	return &MatchView{
		ID:            m.ID,
		FingerprintID: m.FingerprintID,
		MealRequestID: m.MealRequestID,
		GiverID:       m.GiverID,
		GiverName:     o.name(m.GiverID),
		ReceiverID:    m.ReceiverID,
		ReceiverName:  o.name(m.ReceiverID),
		MealType:      m.MealType,
		Status:        m.Status,
		MatchDate:     m.MatchDate,
	}
}

func strPtr(s string) *string { return &s }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
