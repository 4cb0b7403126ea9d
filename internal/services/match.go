package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/data/repos"
	types "github.com/yungbote/payona-backend/internal/domain"
	domainagg "github.com/yungbote/payona-backend/internal/domain/aggregates"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"github.com/yungbote/payona-backend/internal/observability"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
	"github.com/yungbote/payona-backend/internal/platform/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type MatchService interface {
	CreateMatch(ctx context.Context, fingerprintID, mealRequestID, actingUserID uuid.UUID) (*MatchView, error)
	// UpdateStatus reports false when the match does not exist or the acting
	// user is not one of its participants.
	UpdateStatus(ctx context.Context, matchID, actingUserID uuid.UUID, status string) (bool, error)
	// GetByPair returns nil while the pair has not been matched.
	GetByPair(ctx context.Context, fingerprintID, mealRequestID uuid.UUID) (*MatchView, error)
	GetMyMatches(ctx context.Context, userID uuid.UUID) ([]*MatchView, error)
	AutoMatch(ctx context.Context, actingUserID, otherUserID uuid.UUID, mealType string) (*MatchView, error)
	GetActivityStats(ctx context.Context, userID uuid.UUID, period string) (*ActivityStats, error)
}

type MatchServiceDeps struct {
	DB           *gorm.DB
	Log          *logger.Logger
	Aggregate    domainagg.MatchAggregate
	Fingerprints repos.FingerprintRepo
	MealRequests repos.MealRequestRepo
	Matches      repos.MatchRepo
	Users        repos.UserRepo
	Metrics      *observability.Metrics
	Now          func() time.Time
}

type matchService struct {
	db           *gorm.DB
	log          *logger.Logger
	agg          domainagg.MatchAggregate
	fingerprints repos.FingerprintRepo
	mealRequests repos.MealRequestRepo
	matches      repos.MatchRepo
	users        repos.UserRepo
	metrics      *observability.Metrics
	now          func() time.Time
}

func NewMatchService(deps MatchServiceDeps) MatchService {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &matchService{
		db:           deps.DB,
		log:          log.With("service", "MatchService"),
		agg:          deps.Aggregate,
		fingerprints: deps.Fingerprints,
		mealRequests: deps.MealRequests,
		matches:      deps.Matches,
		users:        deps.Users,
		metrics:      deps.Metrics,
		now:          now,
	}
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return observability.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(domainagg.CodeOf(err)))
	}
	span.End()
}

func (s *matchService) CreateMatch(ctx context.Context, fingerprintID, mealRequestID, actingUserID uuid.UUID) (_ *MatchView, err error) {
	ctx, span := startSpan(ctx, "MatchService.CreateMatch",
		attribute.String("fingerprint_id", fingerprintID.String()),
		attribute.String("meal_request_id", mealRequestID.String()),
	)
	defer func() { endSpan(span, err) }()
	return s.createMatch(ctx, fingerprintID, mealRequestID, actingUserID, "manual")
}

func (s *matchService) createMatch(ctx context.Context, fingerprintID, mealRequestID, actingUserID uuid.UUID, source string) (*MatchView, error) {
	res, err := s.agg.CreateMatch(ctx, domainagg.CreateMatchInput{
		FingerprintID: fingerprintID,
		MealRequestID: mealRequestID,
		ActingUserID:  actingUserID,
		At:            s.now(),
	})
	if err != nil {
		s.log.Debug("create match rejected",
			"acting_user_id", actingUserID,
			"fingerprint_id", fingerprintID,
			"meal_request_id", mealRequestID,
			"code", domainagg.CodeOf(err),
		)
		return nil, err
	}
	if res.Created {
		s.metrics.IncMatchCreated(source)
		s.log.Info("match created",
			"match_id", res.Match.ID,
			"giver_id", res.Match.GiverID,
			"receiver_id", res.Match.ReceiverID,
			"source", source,
			"attempts", res.Attempts,
		)
	}
	return s.enrich(ctx, res.Match)
}

func (s *matchService) UpdateStatus(ctx context.Context, matchID, actingUserID uuid.UUID, status string) (_ bool, err error) {
	ctx, span := startSpan(ctx, "MatchService.UpdateStatus",
		attribute.String("match_id", matchID.String()),
		attribute.String("status", status),
	)
	defer func() { endSpan(span, err) }()

	const op = "Meals.Match.UpdateStatus"
	next, perr := meals.ParseMatchStatus(status)
	if perr != nil {
		return false, domainagg.NewError(domainagg.CodeValidation, op, "status must be pending, accepted, rejected or completed", perr)
	}
	res, err := s.agg.UpdateStatus(ctx, domainagg.UpdateMatchStatusInput{
		MatchID:      matchID,
		ActingUserID: actingUserID,
		Status:       next,
		At:           s.now(),
	})
	if err != nil {
		return false, err
	}
	return res.Updated, nil
}

func (s *matchService) GetByPair(ctx context.Context, fingerprintID, mealRequestID uuid.UUID) (*MatchView, error) {
	m, err := s.matches.GetByPair(dbctx.Context{Ctx: ctx}, fingerprintID, mealRequestID)
	if err != nil {
		return nil, fmt.Errorf("get match by pair: %w", err)
	}
	if m == nil {
		return nil, nil
	}
	return s.enrich(ctx, m)
}

func (s *matchService) GetMyMatches(ctx context.Context, userID uuid.UUID) ([]*MatchView, error) {
	if err := requireUser("Meals.Match.GetMyMatches", userID); err != nil {
		return nil, err
	}
	rows, err := s.matches.ListByParticipant(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	ids := make([]uuid.UUID, 0, 2*len(rows))
	for _, m := range rows {
		ids = append(ids, m.GiverID, m.ReceiverID)
	}
	users, err := loadUsers(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*MatchView, 0, len(rows))
	for _, m := range rows {
		out = append(out, matchView(m, users))
	}
	return out, nil
}

func (s *matchService) enrich(ctx context.Context, m *types.Match) (*MatchView, error) {
	users, err := loadUsers(ctx, s.users, []uuid.UUID{m.GiverID, m.ReceiverID})
	if err != nil {
		return nil, err
	}
	return matchView(m, users), nil
}
