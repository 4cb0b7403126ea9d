package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainagg "github.com/yungbote/payona-backend/internal/domain/aggregates"
	"github.com/yungbote/payona-backend/internal/domain/meals"
	"github.com/yungbote/payona-backend/internal/http/response"
	"github.com/yungbote/payona-backend/internal/platform/ctxutil"
	"github.com/yungbote/payona-backend/internal/services"
)

type fakeFingerprints struct {
	created   services.ListingInput
	createErr error
	listed    string
	cancelled bool
}

func (f *fakeFingerprints) Create(_ context.Context, userID uuid.UUID, in services.ListingInput) (*services.FingerprintView, error) {
	f.created = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &services.FingerprintView{ID: uuid.New(), UserID: userID, MealType: meals.MealType(in.MealType)}, nil
}

func (f *fakeFingerprints) ListEligible(_ context.Context, _ uuid.UUID, mealType string) ([]*services.FingerprintView, error) {
	f.listed = mealType
	return []*services.FingerprintView{}, nil
}

func (f *fakeFingerprints) ListMine(context.Context, uuid.UUID) ([]*services.FingerprintView, error) {
	return []*services.FingerprintView{}, nil
}

func (f *fakeFingerprints) Cancel(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return f.cancelled, nil
}

type fakeMatches struct {
	actor     uuid.UUID
	createErr error
	updated   bool
	status    string
	pair      *services.MatchView
	mealType  string
	period    string
}

func (f *fakeMatches) CreateMatch(_ context.Context, fpID, mrID, actor uuid.UUID) (*services.MatchView, error) {
	f.actor = actor
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &services.MatchView{ID: uuid.New(), FingerprintID: fpID, MealRequestID: mrID, Status: meals.MatchPending}, nil
}

func (f *fakeMatches) UpdateStatus(_ context.Context, _, actor uuid.UUID, status string) (bool, error) {
	f.actor, f.status = actor, status
	return f.updated, nil
}

func (f *fakeMatches) GetByPair(context.Context, uuid.UUID, uuid.UUID) (*services.MatchView, error) {
	return f.pair, nil
}

func (f *fakeMatches) GetMyMatches(context.Context, uuid.UUID) ([]*services.MatchView, error) {
	return []*services.MatchView{}, nil
}

func (f *fakeMatches) AutoMatch(_ context.Context, actor, _ uuid.UUID, mealType string) (*services.MatchView, error) {
	f.actor, f.mealType = actor, mealType
	return &services.MatchView{ID: uuid.New(), MealType: meals.MealType(mealType)}, nil
}

func (f *fakeMatches) GetActivityStats(_ context.Context, _ uuid.UUID, period string) (*services.ActivityStats, error) {
	f.period = period
	return &services.ActivityStats{Period: services.ParseActivityPeriod(period)}, nil
}

func authed(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != uuid.Nil {
			ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: userID})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return env.Error.Code
}

func TestFingerprintHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakeFingerprints{}
	h := NewFingerprintHandler(fake)
	r := gin.New()
	r.Use(authed(uuid.New()))
	r.POST("/api/fingerprints", h.Create)
	r.GET("/api/fingerprints", h.ListEligible)
	r.DELETE("/api/fingerprints/:id", h.Cancel)

	rec := serve(r, http.MethodPost, "/api/fingerprints", `{"mealType":"dinner","availableDate":"2026-03-10","startTime":"18:00","description":"extra plate"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}
	if fake.created.MealType != "dinner" || fake.created.Date != "2026-03-10" || fake.created.Start != "18:00" || fake.created.Text != "extra plate" {
		t.Fatalf("create input: got=%+v", fake.created)
	}

	fake.createErr = domainagg.NewError(domainagg.CodeValidation, "op", "mealType must be lunch or dinner", nil)
	rec = serve(r, http.MethodPost, "/api/fingerprints", `{"mealType":"brunch"}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "validation" {
		t.Fatalf("invalid create: got=%d %s", rec.Code, rec.Body.String())
	}

	for _, body := range []string{`{not json`, `{"description":"no meal type"}`} {
		rec = serve(r, http.MethodPost, "/api/fingerprints", body)
		if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_request" {
			t.Fatalf("bad body %s: got=%d %s", body, rec.Code, rec.Body.String())
		}
	}

	rec = serve(r, http.MethodGet, "/api/fingerprints?mealType=lunch", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" || fake.listed != "lunch" {
		t.Fatalf("list: got=%d %s filter=%q", rec.Code, rec.Body.String(), fake.listed)
	}

	rec = serve(r, http.MethodDelete, "/api/fingerprints/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("cancel bad id: want=400 got=%d", rec.Code)
	}
	rec = serve(r, http.MethodDelete, "/api/fingerprints/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "fingerprint_not_found" {
		t.Fatalf("cancel missing: got=%d %s", rec.Code, rec.Body.String())
	}
	fake.cancelled = true
	rec = serve(r, http.MethodDelete, "/api/fingerprints/"+uuid.NewString(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: want=200 got=%d", rec.Code)
	}
}

func TestHandlersRequireAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(authed(uuid.Nil))
	r.GET("/api/matches/my", NewMatchHandler(&fakeMatches{}).ListMine)
	r.GET("/api/meal-requests/my", NewMealRequestHandler(nil).ListMine)

	for _, path := range []string{"/api/matches/my", "/api/meal-requests/my"} {
		rec := serve(r, http.MethodGet, path, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: want=401 got=%d", path, rec.Code)
		}
	}
}

func TestMatchHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	me := uuid.New()
	fake := &fakeMatches{}
	h := NewMatchHandler(fake)
	r := gin.New()
	r.Use(authed(me))
	r.POST("/api/matches", h.Create)
	r.PUT("/api/matches/:id/status", h.UpdateStatus)
	r.GET("/api/matches/for-request", h.GetByPair)
	r.POST("/api/matches/auto-match", h.AutoMatch)
	r.GET("/api/matches/activity-stats", h.ActivityStats)

	fp, mr := uuid.NewString(), uuid.NewString()
	rec := serve(r, http.MethodPost, "/api/matches?fingerprintId="+fp+"&mealRequestId="+mr, "")
	if rec.Code != http.StatusOK || fake.actor != me {
		t.Fatalf("create: got=%d actor=%s", rec.Code, fake.actor)
	}

	rec = serve(r, http.MethodPost, "/api/matches?fingerprintId="+fp, "")
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_meal_request_id" {
		t.Fatalf("create missing id: got=%d %s", rec.Code, rec.Body.String())
	}

	rejections := map[domainagg.ErrorCode]int{
		domainagg.CodeNotEligible:  http.StatusConflict,
		domainagg.CodeSelfMatch:    http.StatusUnprocessableEntity,
		domainagg.CodeUnauthorized: http.StatusForbidden,
	}
	for code, status := range rejections {
		fake.createErr = domainagg.NewError(code, "Meals.Match.CreateMatch", "rejected", nil)
		rec = serve(r, http.MethodPost, "/api/matches?fingerprintId="+fp+"&mealRequestId="+mr, "")
		if rec.Code != status || errorCode(t, rec) != string(code) {
			t.Fatalf("%s: want=%d got=%d %s", code, status, rec.Code, rec.Body.String())
		}
	}
	fake.createErr = errors.New("db down")
	rec = serve(r, http.MethodPost, "/api/matches?fingerprintId="+fp+"&mealRequestId="+mr, "")
	if rec.Code != http.StatusInternalServerError || errorCode(t, rec) != "create_match_failed" {
		t.Fatalf("internal: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = serve(r, http.MethodPut, "/api/matches/"+uuid.NewString()+"/status?status=accepted", "")
	if rec.Code != http.StatusNotFound || fake.status != "accepted" {
		t.Fatalf("update unknown: got=%d status=%q", rec.Code, fake.status)
	}
	fake.updated = true
	rec = serve(r, http.MethodPut, "/api/matches/"+uuid.NewString()+"/status?status=completed", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("update: want=200 got=%d", rec.Code)
	}

	rec = serve(r, http.MethodGet, "/api/matches/for-request?fingerprintId="+fp+"&mealRequestId="+mr, "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("pair unmatched: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = serve(r, http.MethodPost, "/api/matches/auto-match?otherUserId="+uuid.NewString(), "")
	if rec.Code != http.StatusOK || fake.mealType != "lunch" {
		t.Fatalf("auto-match default meal type: got=%d mealType=%q", rec.Code, fake.mealType)
	}
	rec = serve(r, http.MethodPost, "/api/matches/auto-match", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("auto-match without user: want=400 got=%d", rec.Code)
	}

	rec = serve(r, http.MethodGet, "/api/matches/activity-stats", "")
	if rec.Code != http.StatusOK || fake.period != "week" {
		t.Fatalf("activity default period: got=%d period=%q", rec.Code, fake.period)
	}
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, tc := range []struct {
		pinger Pinger
		want   int
	}{
		{fakePinger{}, http.StatusOK},
		{fakePinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable},
		{nil, http.StatusOK},
	} {
		r := gin.New()
		r.GET("/healthcheck", NewHealthHandler(tc.pinger).HealthCheck)
		if rec := serve(r, http.MethodGet, "/healthcheck", ""); rec.Code != tc.want {
			t.Fatalf("healthcheck: want=%d got=%d", tc.want, rec.Code)
		}
	}
}
