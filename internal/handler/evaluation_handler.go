package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxengine/internal/engine"
	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/response"
)

type EvaluationHandler struct {
	evaluationService service.EvaluationService
}

func NewEvaluationHandler(evaluationService service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

func (h *EvaluationHandler) RegisterRoutes(router *gin.RouterGroup) {
	evaluations := router.Group("/evaluations")
	evaluations.Use(middleware.RequireRole("admin", "manager", "staff"))
	{
		evaluations.POST("/profiles/:profileID", h.Evaluate)
		evaluations.GET("/:id", h.Get)
		evaluations.GET("/profiles/:profileID", h.ListByProfile)
	}
}

// Evaluate handles POST /evaluations/profiles/:profileID, running the
// rules engine against the named profile's active rule set.
// @Summary      Run a tax obligation evaluation
// @Description  Evaluates every active obligation against the declared profile's active rule set
// @Tags         evaluations
// @Produce      json
// @Security     BearerAuth
// @Param        profileID  path      string  true  "Profile ID"
// @Success      201        {object}  response.Response{data=service.EvaluationView}
// @Failure      400        {object}  response.Response
// @Failure      409        {object}  response.Response
// @Router       /api/evaluations/profiles/{profileID} [post]
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	tid, err := tenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}
	uid, err := actorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	view, err := h.evaluationService.Evaluate(c.Request.Context(), uid, tid, c.Param("profileID"))
	if err != nil {
		if errors.Is(err, engine.ErrNoActiveRuleSet) {
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, view))
}

// Get handles GET /evaluations/:id.
// @Summary      Get an evaluation
// @Tags         evaluations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Evaluation ID"
// @Success      200  {object}  response.Response{data=service.EvaluationView}
// @Failure      404  {object}  response.Response
// @Router       /api/evaluations/{id} [get]
func (h *EvaluationHandler) Get(c *gin.Context) {
	view, err := h.evaluationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, view))
}

// ListByProfile handles GET /evaluations/profiles/:profileID, returning
// the evaluation history for one profile.
// @Summary      List evaluations for a profile
// @Tags         evaluations
// @Produce      json
// @Security     BearerAuth
// @Param        profileID  path      string  true  "Profile ID"
// @Success      200        {object}  response.Response{data=object}
// @Router       /api/evaluations/profiles/{profileID} [get]
func (h *EvaluationHandler) ListByProfile(c *gin.Context) {
	evaluations, err := h.evaluationService.ListByProfile(c.Request.Context(), c.Param("profileID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to list evaluations"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{"evaluations": evaluations}))
}
