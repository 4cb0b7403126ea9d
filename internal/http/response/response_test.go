package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	domainagg "github.com/yungbote/payona-backend/internal/domain/aggregates"
	"github.com/yungbote/payona-backend/internal/platform/apierr"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", domainagg.NewError(domainagg.CodeValidation, "op", "bad meal type", nil), http.StatusBadRequest, "validation"},
		{"not eligible", domainagg.NewError(domainagg.CodeNotEligible, "op", "listing consumed", nil), http.StatusConflict, "not_eligible"},
		{"conflict", domainagg.NewError(domainagg.CodeConflict, "op", "already matched", nil), http.StatusConflict, "conflict"},
		{"self match", domainagg.NewError(domainagg.CodeSelfMatch, "op", "own listings", nil), http.StatusUnprocessableEntity, "self_match"},
		{"unauthorized", domainagg.NewError(domainagg.CodeUnauthorized, "op", "not yours", nil), http.StatusForbidden, "unauthorized"},
		{"not found", domainagg.NewError(domainagg.CodeNotFound, "op", "no user", nil), http.StatusNotFound, "not_found"},
		{"retryable", domainagg.NewError(domainagg.CodeRetryable, "op", "busy", nil), http.StatusServiceUnavailable, "retryable"},
		{"apierr", apierr.New(http.StatusBadRequest, "invalid_match_id", errors.New("bad id")), http.StatusBadRequest, "invalid_match_id"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "fallback"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondServiceError(c, tc.err, "fallback")

			if rec.Code != tc.wantCode {
				t.Fatalf("status: want=%d got=%d", tc.wantCode, rec.Code)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.wantBody {
				t.Fatalf("code: want=%q got=%q", tc.wantBody, env.Error.Code)
			}
			if env.Error.Message == "" {
				t.Fatalf("message should not be empty")
			}
		})
	}
}
