package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxengine/internal/middleware"
	"taxengine/internal/service"
	"taxengine/pkg/response"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profiles := router.Group("/profiles")
	profiles.Use(middleware.RequireRole("admin", "manager", "staff"))
	{
		profiles.POST("", h.Create)
		profiles.GET("", h.ListMine)
		profiles.GET("/:id", h.Get)
		profiles.PUT("/:id", h.Update)
	}
}

// Create handles POST /profiles to declare a taxpayer profile for a
// fiscal year.
// @Summary      Create tax profile
// @Description  Declares a taxpayer's financial profile for a fiscal year
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateProfileRequest  true  "Profile payload"
// @Success      201      {object}  response.Response{data=model.TaxProfile}
// @Failure      400      {object}  response.Response
// @Router       /api/profiles [post]
func (h *ProfileHandler) Create(c *gin.Context) {
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

	var req service.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), tid, uid, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, profile))
}

// Update handles PUT /profiles/:id.
// @Summary      Update tax profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Profile ID"
// @Param        payload  body      service.UpdateProfileRequest  true  "Profile payload"
// @Success      200      {object}  response.Response{data=model.TaxProfile}
// @Failure      400      {object}  response.Response
// @Router       /api/profiles/{id} [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	tid, err := tenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), tid, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}

// Get handles GET /profiles/:id.
// @Summary      Get tax profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  response.Response{data=model.TaxProfile}
// @Failure      404  {object}  response.Response
// @Router       /api/profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	tid, err := tenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), tid, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, profile))
}

// ListMine handles GET /profiles, scoped to the caller's own profiles.
// @Summary      List my tax profiles
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/profiles [get]
func (h *ProfileHandler) ListMine(c *gin.Context) {
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

	profiles, err := h.profileService.ListByUser(c.Request.Context(), tid, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to list profiles"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{"profiles": profiles}))
}
