package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/payona-backend/internal/domain"
	"github.com/yungbote/payona-backend/internal/platform/dbctx"
	"golang.org/x/sync/errgroup"
)

type ActivityPeriod string

const (
	PeriodDay   ActivityPeriod = "day"
	PeriodWeek  ActivityPeriod = "week"
	PeriodMonth ActivityPeriod = "month"
	PeriodYear  ActivityPeriod = "year"
)

// ParseActivityPeriod never fails: unknown values fall back to a week.
func ParseActivityPeriod(raw string) ActivityPeriod {
	switch p := ActivityPeriod(strings.ToLower(strings.TrimSpace(raw))); p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return p
	}
	return PeriodWeek
}

// WindowStart is the first UTC day covered by the period when today is the
// UTC date of now.
func (p ActivityPeriod) WindowStart(now time.Time) time.Time {
	u := now.UTC()
	today := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	switch p {
	case PeriodDay:
		return today
	case PeriodMonth:
		return addMonthsClamped(today, -1)
	case PeriodYear:
		return addMonthsClamped(today, -12)
	}
	return today.AddDate(0, 0, -7)
}

// addMonthsClamped moves by months, clamping the day to the target month's
// length (March 31 minus one month is February 28, not March 3).
func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

type DailyActivity struct {
	Date            time.Time `json:"date"`
	RequestsCreated int       `json:"requestsCreated"`
	MatchesAccepted int       `json:"matchesAccepted"`
	MatchesCreated  int       `json:"matchesCreated"`
}

type ActivityStats struct {
	Period               ActivityPeriod  `json:"period"`
	DailyStats           []DailyActivity `json:"dailyStats"`
	TotalRequestsCreated int             `json:"totalRequestsCreated"`
	TotalMatchesAccepted int             `json:"totalMatchesAccepted"`
	TotalMatchesCreated  int             `json:"totalMatchesCreated"`
}

// GetActivityStats counts, per UTC day from the period start through today,
// the listings userID created, the matches userID took part in, and the
// subset of those where userID was the receiver.
func (s *matchService) GetActivityStats(ctx context.Context, userID uuid.UUID, period string) (*ActivityStats, error) {
	if err := requireUser("Meals.Match.GetActivityStats", userID); err != nil {
		return nil, err
	}
	p := ParseActivityPeriod(period)
	now := s.now().UTC()
	start := p.WindowStart(now)

	var (
		fpTimes []time.Time
		mrTimes []time.Time
		matches []*types.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}
	g.Go(func() (err error) {
		fpTimes, err = s.fingerprints.CreatedTimesByUserSince(dbc, userID, start)
		return err
	})
	g.Go(func() (err error) {
		mrTimes, err = s.mealRequests.CreatedTimesByUserSince(dbc, userID, start)
		return err
	})
	g.Go(func() (err error) {
		matches, err = s.matches.ListByParticipantSince(dbc, userID, start)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}

	return buildActivityStats(p, userID, start, now, append(fpTimes, mrTimes...), matches), nil
}

func buildActivityStats(p ActivityPeriod, userID uuid.UUID, start, now time.Time, listingTimes []time.Time, matches []*types.Match) *ActivityStats {
	out := &ActivityStats{Period: p, DailyStats: []DailyActivity{}}
	index := map[string]int{}
	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		index[dayKey(d)] = len(out.DailyStats)
		out.DailyStats = append(out.DailyStats, DailyActivity{Date: d})
	}

	for _, t := range listingTimes {
		if i, ok := index[dayKey(t)]; ok {
			out.DailyStats[i].RequestsCreated++
		}
	}
	for _, m := range matches {
		i, ok := index[dayKey(m.CreatedAt)]
		if !ok {
			continue
		}
		out.DailyStats[i].MatchesCreated++
		if m.ReceiverID == userID {
			out.DailyStats[i].MatchesAccepted++
		}
	}

	// Totals are counted from the raw rows, bounded to the same days.
	end := start.AddDate(0, 0, len(out.DailyStats))
	inWindow := func(t time.Time) bool { return !t.Before(start) && t.Before(end) }
	for _, t := range listingTimes {
		if inWindow(t) {
			out.TotalRequestsCreated++
		}
	}
	for _, m := range matches {
		if !inWindow(m.CreatedAt) {
			continue
		}
		out.TotalMatchesCreated++
		if m.ReceiverID == userID {
			out.TotalMatchesAccepted++
		}
	}
	return out
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
