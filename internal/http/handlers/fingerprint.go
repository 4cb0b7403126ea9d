package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yungbote/payona-backend/internal/http/response"
	"github.com/yungbote/payona-backend/internal/services"
)

type FingerprintHandler struct {
	fingerprints services.FingerprintService
}

func NewFingerprintHandler(fingerprints services.FingerprintService) *FingerprintHandler {
	return &FingerprintHandler{fingerprints: fingerprints}
}

type createFingerprintRequest struct {
	MealType      string `json:"mealType" binding:"required"`
	AvailableDate string `json:"availableDate"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Description   string `json:"description"`
}

// POST /api/fingerprints
func (h *FingerprintHandler) Create(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var req createFingerprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	view, err := h.fingerprints.Create(c.Request.Context(), userID, services.ListingInput{
		MealType: req.MealType,
		Date:     req.AvailableDate,
		Start:    req.StartTime,
		End:      req.EndTime,
		Text:     req.Description,
	})
	if err != nil {
		response.RespondServiceError(c, err, "create_fingerprint_failed")
		return
	}
	response.RespondOK(c, view)
}

// GET /api/fingerprints?mealType=
func (h *FingerprintHandler) ListEligible(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	views, err := h.fingerprints.ListEligible(c.Request.Context(), userID, c.Query("mealType"))
	if err != nil {
		response.RespondServiceError(c, err, "list_fingerprints_failed")
		return
	}
	response.RespondOK(c, views)
}

// GET /api/fingerprints/my
func (h *FingerprintHandler) ListMine(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	views, err := h.fingerprints.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err, "list_fingerprints_failed")
		return
	}
	response.RespondOK(c, views)
}

// DELETE /api/fingerprints/:id
func (h *FingerprintHandler) Cancel(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := requiredUUID(c, c.Param("id"), "invalid_fingerprint_id")
	if !ok {
		return
	}
	cancelled, err := h.fingerprints.Cancel(c.Request.Context(), id, userID)
	if err != nil {
		response.RespondServiceError(c, err, "cancel_fingerprint_failed")
		return
	}
	if !cancelled {
		response.RespondError(c, http.StatusNotFound, "fingerprint_not_found", nil)
		return
	}
	response.RespondMessage(c, http.StatusOK, "cancelled")
}
