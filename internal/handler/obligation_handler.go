package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/response"
)

// ObligationHandler exposes the obligation-type catalog. Reads are open
// to any authenticated role; writes are admin-only.
type ObligationHandler struct {
	obligationService service.ObligationService
}

func NewObligationHandler(obligationService service.ObligationService) *ObligationHandler {
	return &ObligationHandler{obligationService: obligationService}
}

func (h *ObligationHandler) RegisterRoutes(router *gin.RouterGroup) {
	obligations := router.Group("/obligations")
	obligations.Use(middleware.RequireRole("admin", "manager", "staff"))
	{
		obligations.GET("", h.ListActive)
		obligations.GET("/:id", h.Get)
	}

	admin := router.Group("/admin/obligations")
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.GET("", h.List)
		admin.PUT("/:id/periodicity", h.UpsertPeriodicity)
	}
}

// Create handles POST /admin/obligations.
// @Summary      Register an obligation type
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateObligationRequest  true  "Obligation payload"
// @Success      201      {object}  response.Response{data=model.ObligationType}
// @Failure      400      {object}  response.Response
// @Router       /api/admin/obligations [post]
func (h *ObligationHandler) Create(c *gin.Context) {
	uid, err := actorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	var req service.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	o, err := h.obligationService.Create(c.Request.Context(), uid, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, o))
}

// Update handles PUT /admin/obligations/:id.
// @Summary      Update an obligation type
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "Obligation ID"
// @Param        payload  body      service.UpdateObligationRequest  true  "Obligation payload"
// @Success      200      {object}  response.Response{data=model.ObligationType}
// @Failure      400      {object}  response.Response
// @Router       /api/admin/obligations/{id} [put]
func (h *ObligationHandler) Update(c *gin.Context) {
	uid, err := actorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	var req service.UpdateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	o, err := h.obligationService.Update(c.Request.Context(), uid, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, o))
}

// Get handles GET /obligations/:id.
// @Summary      Get an obligation type
// @Tags         obligations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Obligation ID"
// @Success      200  {object}  response.Response{data=model.ObligationType}
// @Failure      404  {object}  response.Response
// @Router       /api/obligations/{id} [get]
func (h *ObligationHandler) Get(c *gin.Context) {
	o, err := h.obligationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, o))
}

// ListActive handles GET /obligations, the catalog view the evaluator
// also consumes.
// @Summary      List active obligation types
// @Tags         obligations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/obligations [get]
func (h *ObligationHandler) ListActive(c *gin.Context) {
	obligations, err := h.obligationService.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to list obligations"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{"obligations": obligations}))
}

// List handles GET /admin/obligations, including inactive entries.
// @Summary      List all obligation types
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/admin/obligations [get]
func (h *ObligationHandler) List(c *gin.Context) {
	obligations, err := h.obligationService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to list obligations"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{"obligations": obligations}))
}

// UpsertPeriodicity handles PUT /admin/obligations/:id/periodicity.
// @Summary      Set an obligation's periodicity for a fiscal year
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                              true  "Obligation ID"
// @Param        payload  body      service.UpsertPeriodicityRequest   true  "Periodicity payload"
// @Success      200      {object}  response.Response{data=model.ObligationPeriodicity}
// @Failure      400      {object}  response.Response
// @Router       /api/admin/obligations/{id}/periodicity [put]
func (h *ObligationHandler) UpsertPeriodicity(c *gin.Context) {
	uid, err := actorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	var req service.UpsertPeriodicityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	p, err := h.obligationService.UpsertPeriodicity(c.Request.Context(), uid, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, p))
}
