package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/response"
)

type CalendarHandler struct {
	calendarService service.CalendarService
}

func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

func (h *CalendarHandler) RegisterRoutes(router *gin.RouterGroup) {
	calendar := router.Group("/calendar")
	calendar.Use(middleware.RequireRole("admin", "manager", "staff"))
	{
		calendar.GET("/profiles/:profileID", h.ListByProfile)
		calendar.PUT("/entries/:id/status", h.UpdateStatus)
	}
}

type updateCalendarStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListByProfile handles GET /calendar/profiles/:profileID.
// @Summary      List compliance calendar entries for a profile
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        profileID  path      string  true  "Profile ID"
// @Success      200        {object}  response.Response{data=object}
// @Router       /api/calendar/profiles/{profileID} [get]
func (h *CalendarHandler) ListByProfile(c *gin.Context) {
	entries, err := h.calendarService.ListByProfile(c.Request.Context(), c.Param("profileID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to list calendar entries"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{"entries": entries}))
}

// UpdateStatus handles PUT /calendar/entries/:id/status.
// @Summary      Mark a calendar entry completed or dismissed
// @Tags         calendar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Calendar Entry ID"
// @Param        payload  body      updateCalendarStatusRequest  true  "New status"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/calendar/entries/{id}/status [put]
func (h *CalendarHandler) UpdateStatus(c *gin.Context) {
	var req updateCalendarStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.calendarService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Calendar entry updated"))
}
