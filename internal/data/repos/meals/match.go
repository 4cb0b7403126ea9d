package meals

import (
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/payona-backend/internal/domain"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
	"github.com/yungbote/payona-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchRepo interface {
	Create(dbc dbctx.Context, m *types.Match) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Match, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Match, error)
	GetByPair(dbc dbctx.Context, fingerprintID, mealRequestID uuid.UUID) (*types.Match, error)
	// ListByParticipant returns matches where the user is giver or receiver, newest first.
	ListByParticipant(dbc dbctx.Context, userID uuid.UUID) ([]*types.Match, error)
	ListByParticipantSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.Match, error)
	CountByPair(dbc dbctx.Context, fingerprintID, mealRequestID uuid.UUID) (int64, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type matchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMatchRepo(db *gorm.DB, baseLog *logger.Logger) MatchRepo {
	repoLog := baseLog.With("repo", "MatchRepo")
	return &matchRepo{db: db, log: repoLog}
}

func (r *matchRepo) Create(dbc dbctx.Context, m *types.Match) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if m == nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).Create(m).Error
}

func (r *matchRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Match, error) {
	return r.first(dbc, false, "id = ?", id)
}

func (r *matchRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Match, error) {
	return r.first(dbc, true, "id = ?", id)
}

func (r *matchRepo) GetByPair(dbc dbctx.Context, fingerprintID, mealRequestID uuid.UUID) (*types.Match, error) {
	if fingerprintID == uuid.Nil || mealRequestID == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc, false, "fingerprint_id = ? AND meal_request_id = ?", fingerprintID, mealRequestID)
}

func (r *matchRepo) first(dbc dbctx.Context, lock bool, query string, args ...interface{}) (*types.Match, error) {
	for _, a := range args {
		if id, ok := a.(uuid.UUID); ok && id == uuid.Nil {
			return nil, nil
		}
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row types.Match
	if err := q.Where(query, args...).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *matchRepo) ListByParticipant(dbc dbctx.Context, userID uuid.UUID) ([]*types.Match, error) {
	return r.listByParticipant(dbc, userID, time.Time{})
}

func (r *matchRepo) ListByParticipantSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.Match, error) {
	return r.listByParticipant(dbc, userID, since)
}

func (r *matchRepo) listByParticipant(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.Match, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var results []*types.Match
	if userID == uuid.Nil {
		return results, nil
	}
	q := t.WithContext(dbc.Ctx).
		Where("(giver_id = ? OR receiver_id = ?)", userID, userID)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since.UTC())
	}
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *matchRepo) CountByPair(dbc dbctx.Context, fingerprintID, mealRequestID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	err := t.WithContext(dbc.Ctx).
		Model(&types.Match{}).
		Where("fingerprint_id = ? AND meal_request_id = ?", fingerprintID, mealRequestID).
		Count(&n).Error
	return n, err
}

func (r *matchRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Match{}).
		Where("id = ?", id).
		Updates(updates).Error
}
