package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/data/repos"
	types "github.com/yungbote/payona-backend/internal/domain"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
	"github.com/yungbote/payona-backend/internal/platform/logger"
)

// ProfileProvider resolves the locality profile (gender, city, dormitory) of
// users. A user without a profile is reported as nil, never as an error.
type ProfileProvider interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	GetProfiles(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*types.Profile, error)
}

type repoProfileProvider struct {
	log  *logger.Logger
	repo repos.ProfileRepo
}

func NewProfileProvider(log *logger.Logger, repo repos.ProfileRepo) ProfileProvider {
	return &repoProfileProvider{log: log.With("service", "ProfileProvider"), repo: repo}
}

func (p *repoProfileProvider) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	prof, err := p.repo.GetByUserID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return prof, nil
}

func (p *repoProfileProvider) GetProfiles(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*types.Profile, error) {
	out := make(map[uuid.UUID]*types.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	rows, err := p.repo.GetByUserIDs(dbctx.Context{Ctx: ctx}, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	for _, row := range rows {
		if row != nil {
			out[row.UserID] = row
		}
	}
	return out, nil
}
