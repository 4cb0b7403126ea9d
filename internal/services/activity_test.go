package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/data/repos/testutil"
	"github.com/yungbote/payona-backend/internal/domain/meals"
)

func TestParseActivityPeriod(t *testing.T) {
	now := time.Date(2026, 3, 31, 22, 0, 0, 0, time.UTC)
	cases := []struct {
		raw   string
		want  ActivityPeriod
		start time.Time
	}{
		{"day", PeriodDay, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"WEEK", PeriodWeek, time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC)},
		{"month", PeriodMonth, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"year", PeriodYear, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"fortnight", PeriodWeek, time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC)},
	}
	if got := addMonthsClamped(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), -12); got.Day() != 28 {
		t.Fatalf("leap day minus a year: got %s", got)
	}
	for _, tc := range cases {
		p := ParseActivityPeriod(tc.raw)
		if p != tc.want {
			t.Fatalf("ParseActivityPeriod(%q): want=%s got=%s", tc.raw, tc.want, p)
		}
		if got := p.WindowStart(now); !got.Equal(tc.start) {
			t.Fatalf("%s start: want=%s got=%s", p, tc.start, got)
		}
	}
}

func TestBuildActivityStatsIsDense(t *testing.T) {
	start := PeriodWeek.WindowStart(fixedNow)
	stats := buildActivityStats(PeriodWeek, uuid.New(), start, fixedNow, nil, nil)
	if len(stats.DailyStats) != 8 {
		t.Fatalf("week window: want 8 days got %d", len(stats.DailyStats))
	}
	for i, d := range stats.DailyStats {
		if !d.Date.Equal(start.AddDate(0, 0, i)) {
			t.Fatalf("day %d: date=%s", i, d.Date)
		}
		if d.RequestsCreated+d.MatchesCreated+d.MatchesAccepted != 0 {
			t.Fatalf("day %d should be empty: %+v", i, d)
		}
	}
	if stats.TotalRequestsCreated+stats.TotalMatchesCreated+stats.TotalMatchesAccepted != 0 {
		t.Fatalf("totals should be zero: %+v", stats)
	}
	if day := buildActivityStats(PeriodDay, uuid.New(), PeriodDay.WindowStart(fixedNow), fixedNow, nil, nil); len(day.DailyStats) != 1 {
		t.Fatalf("day window: want 1 entry got %d", len(day.DailyStats))
	}
}

func TestGetActivityStats(t *testing.T) {
	h := newHarness(t)
	me := h.resident(t, "Ayse", "Kaya", "female", "Ankara", "Kız Yurdu")
	other := h.resident(t, "Elif", "Demir", "female", "Ankara", "Kız Yurdu")
	today := fixedNow.Add(-time.Hour)
	yesterday := fixedNow.AddDate(0, 0, -1)
	longAgo := fixedNow.AddDate(0, 0, -30)

	myFP := testutil.SeedFingerprint(t, h.ctx, h.db, me.ID, meals.MealTypeLunch, testutil.FingerprintCreatedAt(today))
	testutil.SeedFingerprint(t, h.ctx, h.db, me.ID, meals.MealTypeLunch, testutil.FingerprintCreatedAt(longAgo))
	myMR := testutil.SeedMealRequest(t, h.ctx, h.db, me.ID, meals.MealTypeDinner, testutil.MealRequestCreatedAt(yesterday))
	theirFP := testutil.SeedFingerprint(t, h.ctx, h.db, other.ID, meals.MealTypeDinner, testutil.FingerprintCreatedAt(yesterday))
	theirMR := testutil.SeedMealRequest(t, h.ctx, h.db, other.ID, meals.MealTypeLunch, testutil.MealRequestCreatedAt(today))

	testutil.SeedMatch(t, h.ctx, h.db, myFP, theirMR, today)     // me as giver
	testutil.SeedMatch(t, h.ctx, h.db, theirFP, myMR, yesterday) // me as receiver

	stats, err := h.matches.GetActivityStats(h.ctx, me.ID, "week")
	if err != nil {
		t.Fatalf("GetActivityStats: %v", err)
	}
	if len(stats.DailyStats) != 8 {
		t.Fatalf("days: want 8 got %d", len(stats.DailyStats))
	}
	last, prev := stats.DailyStats[7], stats.DailyStats[6]
	if last.RequestsCreated != 1 || last.MatchesCreated != 1 || last.MatchesAccepted != 0 {
		t.Fatalf("today: %+v", last)
	}
	if prev.RequestsCreated != 1 || prev.MatchesCreated != 1 || prev.MatchesAccepted != 1 {
		t.Fatalf("yesterday: %+v", prev)
	}
	if stats.TotalRequestsCreated != 2 || stats.TotalMatchesCreated != 2 || stats.TotalMatchesAccepted != 1 {
		t.Fatalf("totals: %+v", stats)
	}
	assertTotalsMatchSeries(t, stats)

	year, err := h.matches.GetActivityStats(h.ctx, me.ID, "year")
	if err != nil || year.TotalRequestsCreated != 3 {
		t.Fatalf("year totals: %+v err=%v", year, err)
	}
	assertTotalsMatchSeries(t, year)
}

func assertTotalsMatchSeries(t *testing.T, s *ActivityStats) {
	t.Helper()
	var sum DailyActivity
	for _, d := range s.DailyStats {
		sum.RequestsCreated += d.RequestsCreated
		sum.MatchesCreated += d.MatchesCreated
		sum.MatchesAccepted += d.MatchesAccepted
	}
	if sum.RequestsCreated != s.TotalRequestsCreated || sum.MatchesCreated != s.TotalMatchesCreated || sum.MatchesAccepted != s.TotalMatchesAccepted {
		t.Fatalf("totals %+v differ from series sum %+v", s, sum)
	}
}

