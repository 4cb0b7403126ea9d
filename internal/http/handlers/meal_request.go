package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yungbote/payona-backend/internal/http/response"
	"github.com/yungbote/payona-backend/internal/services"
)

type MealRequestHandler struct {
	mealRequests services.MealRequestService
}

func NewMealRequestHandler(mealRequests services.MealRequestService) *MealRequestHandler {
	return &MealRequestHandler{mealRequests: mealRequests}
}

type createMealRequestRequest struct {
	MealType           string `json:"mealType" binding:"required"`
	PreferredDate      string `json:"preferredDate"`
	PreferredStartTime string `json:"preferredStartTime"`
	PreferredEndTime   string `json:"preferredEndTime"`
	Notes              string `json:"notes"`
}

// POST /api/meal-requests
func (h *MealRequestHandler) Create(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var req createMealRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	view, err := h.mealRequests.Create(c.Request.Context(), userID, services.ListingInput{
		MealType: req.MealType,
		Date:     req.PreferredDate,
		Start:    req.PreferredStartTime,
		End:      req.PreferredEndTime,
		Text:     req.Notes,
	})
	if err != nil {
		response.RespondServiceError(c, err, "create_meal_request_failed")
		return
	}
	response.RespondOK(c, view)
}

// GET /api/meal-requests?mealType=
func (h *MealRequestHandler) ListEligible(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	views, err := h.mealRequests.ListEligible(c.Request.Context(), userID, c.Query("mealType"))
	if err != nil {
		response.RespondServiceError(c, err, "list_meal_requests_failed")
		return
	}
	response.RespondOK(c, views)
}

// GET /api/meal-requests/my
func (h *MealRequestHandler) ListMine(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	views, err := h.mealRequests.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err, "list_meal_requests_failed")
		return
	}
	response.RespondOK(c, views)
}

// DELETE /api/meal-requests/:id
func (h *MealRequestHandler) Cancel(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := requiredUUID(c, c.Param("id"), "invalid_meal_request_id")
	if !ok {
		return
	}
	cancelled, err := h.mealRequests.Cancel(c.Request.Context(), id, userID)
	if err != nil {
		response.RespondServiceError(c, err, "cancel_meal_request_failed")
		return
	}
	if !cancelled {
		response.RespondError(c, http.StatusNotFound, "meal_request_not_found", nil)
		return
	}
	response.RespondMessage(c, http.StatusOK, "cancelled")
}
