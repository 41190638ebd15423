package handlers

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/workforce-api/internal/errors"
	"github.com/yukikurage/workforce-api/internal/middleware"
	"github.com/yukikurage/workforce-api/internal/utils"
)

// bindJSON binds the request body into req and writes the 400 response
// itself when binding fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if details := utils.TranslateValidationErrors(err); details != nil {
			apierrors.BadRequestWithDetails(c, "Validation failed", details)
			return false
		}
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// pathID returns the id parsed by middleware.RequireID.
func pathID(c *gin.Context) (uint64, bool) {
	id, ok := middleware.GetID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid ID")
	}
	return id, ok
}
