package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actorID extracts the authenticated user's UUID, set by
// middleware.RequireRole from the JWT's "sub" claim.
func actorID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("userID")
	if !exists {
		return uuid.UUID{}, errors.New("user id not found in context")
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.UUID{}, errors.New("invalid user id format")
	}
	return uuid.Parse(str)
}

// tenantID extracts the authenticated user's tenant UUID, set by
// middleware.RequireRole from the JWT's "tenant_id" claim.
func tenantID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("tenantID")
	if !exists {
		return uuid.UUID{}, errors.New("tenant id not found in context")
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.UUID{}, errors.New("invalid tenant id format")
	}
	return uuid.Parse(str)
}
