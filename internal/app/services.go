package app

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/yungbote/payona-backend/internal/data/aggregates"
	"github.com/yungbote/payona-backend/internal/eligibility"
	"github.com/yungbote/payona-backend/internal/observability"
	"github.com/yungbote/payona-backend/internal/platform/logger"
	"github.com/yungbote/payona-backend/internal/services"
	"gorm.io/gorm"
)

type Services struct {
	Tokens       services.TokenVerifier
	Profiles     services.ProfileProvider
	Fingerprints services.FingerprintService
	MealRequests services.MealRequestService
	Matches      services.MatchService
}

func wireServices(db *gorm.DB, rdb *goredis.Client, log *logger.Logger, cfg Config, reposet Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	policy, err := eligibility.LoadPolicy(cfg.EligibilityPolicyFile)
	if err != nil {
		return Services{}, fmt.Errorf("load eligibility policy: %w", err)
	}

	profiles := services.NewCachedProfileProvider(
		log,
		services.NewProfileProvider(log, reposet.Profile),
		rdb,
		cfg.ProfileCacheTTL,
		metrics,
	)

	matchAgg := aggregates.NewMatchAggregate(aggregates.MatchAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log,
			Hooks: aggregates.NewObservabilityHooks(metrics),
		},
		Retry:             aggregates.RetryPolicy{MaxAttempts: cfg.MatchCreateMaxAttempts},
		Fingerprints:      reposet.Fingerprint,
		MealRequests:      reposet.MealRequest,
		Matches:           reposet.Match,
		StrictTransitions: cfg.MatchStrictTransitions,
	})

	listing := services.ListingDeps{
		Log:          log,
		Fingerprints: reposet.Fingerprint,
		MealRequests: reposet.MealRequest,
		Users:        reposet.User,
		Profiles:     profiles,
		Policy:       policy,
		Matches:      matchAgg,
		Metrics:      metrics,
	}

	return Services{
		Tokens:       services.NewTokenVerifier(log, cfg.Tokens),
		Profiles:     profiles,
		Fingerprints: services.NewFingerprintService(listing),
		MealRequests: services.NewMealRequestService(listing),
		Matches: services.NewMatchService(services.MatchServiceDeps{
			DB:           db,
			Log:          log,
			Aggregate:    matchAgg,
			Fingerprints: reposet.Fingerprint,
			MealRequests: reposet.MealRequest,
			Matches:      reposet.Match,
			Users:        reposet.User,
			Metrics:      metrics,
		}),
	}, nil
}
