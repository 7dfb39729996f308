package handlers

import (
	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/updates"
)

// actorID is the id of the authenticated user, or 0 on public routes.
func actorID(c *gin.Context) uint {
	if user, ok := helper.CurrentUser(c); ok {
		return user.ID
	}
	return 0
}

// bindPayload reads a partial update body as raw fields for the update builder.
func bindPayload(c *gin.Context, h *helper.HTTPHelper) (updates.Payload, bool) {
	var payload updates.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.SendValidationError(c, err)
		return nil, false
	}
	return payload, true
}
