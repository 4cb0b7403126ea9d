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

type MealRequestRepo interface {
	Create(dbc dbctx.Context, rows []*types.MealRequest) ([]*types.MealRequest, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.MealRequest, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.MealRequest, error)
	// ListActive returns active meal requests, newest first.
	ListActive(dbc dbctx.Context, filter ListingFilter) ([]*types.MealRequest, error)
	// ListActiveByUser returns a user's active meal requests in creation order.
	ListActiveByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MealRequest, error)
	// ListByUser returns every meal request of a user, newest first.
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MealRequest, error)
	CreatedTimesByUserSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]time.Time, error)
}

type mealRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMealRequestRepo(db *gorm.DB, baseLog *logger.Logger) MealRequestRepo {
	repoLog := baseLog.With("repo", "MealRequestRepo")
	return &mealRequestRepo{db: db, log: repoLog}
}

func (r *mealRequestRepo) Create(dbc dbctx.Context, rows []*types.MealRequest) ([]*types.MealRequest, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.MealRequest{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *mealRequestRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.MealRequest, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.MealRequest
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

// LockByID locks the row for the rest of the transaction.
func (r *mealRequestRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.MealRequest, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.MealRequest
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

func (r *mealRequestRepo) ListActive(dbc dbctx.Context, filter ListingFilter) ([]*types.MealRequest, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var results []*types.MealRequest
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

func (r *mealRequestRepo) ListActiveByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MealRequest, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var results []*types.MealRequest
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

func (r *mealRequestRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.MealRequest, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var results []*types.MealRequest
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

func (r *mealRequestRepo) CreatedTimesByUserSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]time.Time, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []time.Time
	if err := t.WithContext(dbc.Ctx).
		Model(&types.MealRequest{}).
		Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Order("created_at ASC").
		Pluck("created_at", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
