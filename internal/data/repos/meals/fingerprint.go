package meals

import (
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/payona-backend/internal/domain"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
	"github.com/yungbote/payona-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FingerprintRepo interface {
	Create(dbc dbctx.Context, rows []*types.Fingerprint) ([]*types.Fingerprint, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Fingerprint, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Fingerprint, error)
	// ListActive returns active fingerprints, newest first.
	ListActive(dbc dbctx.Context, filter ListingFilter) ([]*types.Fingerprint, error)
	// ListActiveByUser returns a user's active fingerprints in creation order.
	ListActiveByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Fingerprint, error)
	// ListByUser returns every fingerprint of a user, newest first.
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Fingerprint, error)
	CreatedTimesByUserSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]time.Time, error)
}

type fingerprintRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFingerprintRepo(db *gorm.DB, baseLog *logger.Logger) FingerprintRepo {
	repoLog := baseLog.With("repo", "FingerprintRepo")
	return &fingerprintRepo{db: db, log: repoLog}
}

func (r *fingerprintRepo) Create(dbc dbctx.Context, rows []*types.Fingerprint) ([]*types.Fingerprint, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Fingerprint{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *fingerprintRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Fingerprint, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.Fingerprint
	if err := t.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// LockByID takes a row lock on postgres. sqlite ignores the locking clause
// and relies on the database-level write lock instead.
func (r *fingerprintRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Fingerprint, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.Fingerprint
	if err := t.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *fingerprintRepo) ListActive(dbc dbctx.Context, filter ListingFilter) ([]*types.Fingerprint, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var results []*types.Fingerprint
	q := t.WithContext(dbc.Ctx).
		Where("status = ?", meals.ListingActive)
	if err := filter.apply(q).
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fingerprintRepo) ListActiveByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Fingerprint, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var results []*types.Fingerprint
	if userID == uuid.Nil {
		return results, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND status = ?", userID, meals.ListingActive).
		Order("created_at ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fingerprintRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Fingerprint, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var results []*types.Fingerprint
	if userID == uuid.Nil {
		return results, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fingerprintRepo) CreatedTimesByUserSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]time.Time, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []time.Time
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Fingerprint{}).
		Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Order("created_at ASC").
		Pluck("created_at", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
