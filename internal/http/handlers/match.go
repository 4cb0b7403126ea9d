package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yungbote/payona-backend/internal/http/response"
	"github.com/yungbote/payona-backend/internal/services"
)

type MatchHandler struct {
	matches services.MatchService
}

func NewMatchHandler(matches services.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// POST /api/matches?fingerprintId=&mealRequestId=
func (h *MatchHandler) Create(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	fpID, ok := requiredUUID(c, c.Query("fingerprintId"), "invalid_fingerprint_id")
	if !ok {
		return
	}
	mrID, ok := requiredUUID(c, c.Query("mealRequestId"), "invalid_meal_request_id")
	if !ok {
		return
	}
	view, err := h.matches.CreateMatch(c.Request.Context(), fpID, mrID, userID)
	if err != nil {
		response.RespondServiceError(c, err, "create_match_failed")
		return
	}
	response.RespondOK(c, view)
}

// GET /api/matches/my
func (h *MatchHandler) ListMine(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	views, err := h.matches.GetMyMatches(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err, "list_matches_failed")
		return
	}
	response.RespondOK(c, views)
}

// PUT /api/matches/:id/status?status=
func (h *MatchHandler) UpdateStatus(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	matchID, ok := requiredUUID(c, c.Param("id"), "invalid_match_id")
	if !ok {
		return
	}
	updated, err := h.matches.UpdateStatus(c.Request.Context(), matchID, userID, c.Query("status"))
	if err != nil {
		response.RespondServiceError(c, err, "update_match_status_failed")
		return
	}
	if !updated {
		response.RespondError(c, http.StatusNotFound, "match_not_found", nil)
		return
	}
	response.RespondMessage(c, http.StatusOK, "status updated")
}

// GET /api/matches/for-request?fingerprintId=&mealRequestId=
// Responds with JSON null while the pair is unmatched.
func (h *MatchHandler) GetByPair(c *gin.Context) {
	if _, ok := actingUser(c); !ok {
		return
	}
	fpID, ok := requiredUUID(c, c.Query("fingerprintId"), "invalid_fingerprint_id")
	if !ok {
		return
	}
	mrID, ok := requiredUUID(c, c.Query("mealRequestId"), "invalid_meal_request_id")
	if !ok {
		return
	}
	view, err := h.matches.GetByPair(c.Request.Context(), fpID, mrID)
	if err != nil {
		response.RespondServiceError(c, err, "get_match_failed")
		return
	}
	response.RespondOK(c, view)
}

// POST /api/matches/auto-match?otherUserId=&mealType=
func (h *MatchHandler) AutoMatch(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	otherID, ok := requiredUUID(c, c.Query("otherUserId"), "invalid_user_id")
	if !ok {
		return
	}
	view, err := h.matches.AutoMatch(c.Request.Context(), userID, otherID, c.DefaultQuery("mealType", "lunch"))
	if err != nil {
		response.RespondServiceError(c, err, "auto_match_failed")
		return
	}
	response.RespondOK(c, view)
}

// GET /api/matches/activity-stats?period=
func (h *MatchHandler) ActivityStats(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	stats, err := h.matches.GetActivityStats(c.Request.Context(), userID, c.DefaultQuery("period", "week"))
	if err != nil {
		response.RespondServiceError(c, err, "activity_stats_failed")
		return
	}
	response.RespondOK(c, stats)
}
