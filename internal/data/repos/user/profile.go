package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/payona-backend/internal/domain"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
	"github.com/yungbote/payona-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepo interface {
	Upsert(dbc dbctx.Context, profile *types.Profile) error
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.Profile, error)
	GetByUserIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.Profile, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (r *profileRepo) Upsert(dbc dbctx.Context, profile *types.Profile) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if profile == nil || profile.UserID == uuid.Nil {
		return nil
	}
	profile.Gender = strings.TrimSpace(profile.Gender)
	profile.City = strings.TrimSpace(profile.City)
	profile.Dormitory = strings.TrimSpace(profile.Dormitory)
	profile.UpdatedAt = time.Now().UTC()
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"gender", "city", "dormitory", "updated_at"}),
		}).
		Create(profile).Error
}

// GetByUserID returns nil, nil when the user has no profile.
func (r *profileRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.Profile, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByUserIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *profileRepo) GetByUserIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.Profile, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var results []*types.Profile
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
