package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/pagination"
	"taxengine/pkg/response"
)

// AdminHandler exposes fiscal-year, threshold, and rule-set
// administration, restricted to the admin role.
type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.POST("/fiscal-years", h.CreateFiscalYear)
		admin.GET("/fiscal-years", h.ListFiscalYears)

		admin.PUT("/fiscal-years/:fiscalYearID/thresholds", h.UpsertThreshold)
		admin.GET("/fiscal-years/:fiscalYearID/thresholds", h.ListThresholds)

		admin.POST("/rule-sets", h.CreateRuleSet)
		admin.GET("/rule-sets/:id", h.GetRuleSet)
		admin.GET("/fiscal-years/:fiscalYearID/rule-sets", h.ListRuleSets)
		admin.POST("/rule-sets/:id/publish", h.PublishRuleSet)
	}
}

// CreateFiscalYear handles POST /admin/fiscal-years.
// @Summary      Open a fiscal year
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateFiscalYearRequest  true  "Fiscal year payload"
// @Success      201      {object}  response.Response{data=model.FiscalYear}
// @Failure      400      {object}  response.Response
// @Router       /api/admin/fiscal-years [post]
func (h *AdminHandler) CreateFiscalYear(c *gin.Context) {
	uid, err := actorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	var req service.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	fy, err := h.adminService.CreateFiscalYear(c.Request.Context(), uid, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, fy))
}

// ListFiscalYears handles GET /admin/fiscal-years.
// @Summary      List fiscal years
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/admin/fiscal-years [get]
func (h *AdminHandler) ListFiscalYears(c *gin.Context) {
	p := pagination.Parse(c)

	years, total, err := h.adminService.ListFiscalYears(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to list fiscal years"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"fiscal_years": years,
		"total":        total,
		"page":         p.Page,
		"limit":        p.Limit,
	}))
}

// UpsertThreshold handles PUT /admin/fiscal-years/:fiscalYearID/thresholds.
// @Summary      Upsert a threshold
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        fiscalYearID  path      string                            true  "Fiscal Year ID"
// @Param        payload       body      service.UpsertThresholdRequest   true  "Threshold payload"
// @Success      200           {object}  response.Response{data=model.Threshold}
// @Failure      400           {object}  response.Response
// @Router       /api/admin/fiscal-years/{fiscalYearID}/thresholds [put]
func (h *AdminHandler) UpsertThreshold(c *gin.Context) {
	uid, err := actorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	var req service.UpsertThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	t, err := h.adminService.UpsertThreshold(c.Request.Context(), uid, c.Param("fiscalYearID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, t))
}

// ListThresholds handles GET /admin/fiscal-years/:fiscalYearID/thresholds.
// @Summary      List thresholds for a fiscal year
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        fiscalYearID  path      string  true  "Fiscal Year ID"
// @Success      200           {object}  response.Response{data=object}
// @Router       /api/admin/fiscal-years/{fiscalYearID}/thresholds [get]
func (h *AdminHandler) ListThresholds(c *gin.Context) {
	thresholds, err := h.adminService.ListThresholds(c.Request.Context(), c.Param("fiscalYearID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to list thresholds"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{"thresholds": thresholds}))
}

// CreateRuleSet handles POST /admin/rule-sets, opening a new draft.
// @Summary      Create a draft rule set
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateRuleSetRequest  true  "Rule set payload"
// @Success      201      {object}  response.Response{data=model.RuleSet}
// @Failure      400      {object}  response.Response
// @Router       /api/admin/rule-sets [post]
func (h *AdminHandler) CreateRuleSet(c *gin.Context) {
	uid, err := actorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	var req service.CreateRuleSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rs, err := h.adminService.CreateRuleSet(c.Request.Context(), uid, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rs))
}

// GetRuleSet handles GET /admin/rule-sets/:id.
// @Summary      Get a rule set with its rules and conditions
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rule Set ID"
// @Success      200  {object}  response.Response{data=model.RuleSet}
// @Failure      404  {object}  response.Response
// @Router       /api/admin/rule-sets/{id} [get]
func (h *AdminHandler) GetRuleSet(c *gin.Context) {
	rs, err := h.adminService.GetRuleSet(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rs))
}

// ListRuleSets handles GET /admin/fiscal-years/:fiscalYearID/rule-sets.
// @Summary      List rule sets for a fiscal year
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        fiscalYearID  path      string  true  "Fiscal Year ID"
// @Success      200           {object}  response.Response{data=object}
// @Router       /api/admin/fiscal-years/{fiscalYearID}/rule-sets [get]
func (h *AdminHandler) ListRuleSets(c *gin.Context) {
	sets, err := h.adminService.ListRuleSets(c.Request.Context(), c.Param("fiscalYearID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to list rule sets"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{"rule_sets": sets}))
}

// PublishRuleSet handles POST /admin/rule-sets/:id/publish, promoting a
// draft to active and deprecating its fiscal year's prior active set.
// @Summary      Publish a rule set
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rule Set ID"
// @Success      200  {object}  response.Response{data=model.RuleSet}
// @Failure      400  {object}  response.Response
// @Router       /api/admin/rule-sets/{id}/publish [post]
func (h *AdminHandler) PublishRuleSet(c *gin.Context) {
	uid, err := actorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	rs, err := h.adminService.PublishRuleSet(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rs))
}
