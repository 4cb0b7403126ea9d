package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/platform/ctxutil"
	"github.com/yungbote/payona-backend/internal/platform/logger"
)

type stubVerifier struct {
	tokens map[string]uuid.UUID
}

func (s stubVerifier) Verify(token string) (uuid.UUID, error) {
	if id, ok := s.tokens[token]; ok {
		return id, nil
	}
	return uuid.Nil, errors.New("invalid or expired token")
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	am := NewAuthMiddleware(logger.Nop(), stubVerifier{tokens: map[string]uuid.UUID{"good": userID}})

	r := gin.New()
	r.Use(am.RequireAuth())
	var seen uuid.UUID
	r.GET("/api/matches/my", func(c *gin.Context) {
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			seen = rd.UserID
		}
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"good token", "bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/matches/my", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s: want=%d got=%d", tc.name, tc.want, rec.Code)
		}
	}
	if seen != userID {
		t.Fatalf("request data user: want=%s got=%s", userID, seen)
	}
}

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var td *ctxutil.TraceData
	r.GET("/x", func(c *gin.Context) {
		td = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	req.Header.Set(HeaderTraceID, "trace-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if td == nil || td.RequestID != "req-1" || td.TraceID != "trace-1" {
		t.Fatalf("trace data: got=%+v", td)
	}
	if rec.Header().Get(HeaderRequestID) != "req-1" {
		t.Fatalf("response request id: got=%q", rec.Header().Get(HeaderRequestID))
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if td.RequestID == "" || td.TraceID == "" {
		t.Fatalf("generated ids missing: %+v", td)
	}
}
