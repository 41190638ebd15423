package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/workforce-api/internal/constants"
	apierrors "github.com/yukikurage/workforce-api/internal/errors"
)

// RequireID parses the :id path parameter and stores it for GetID.
// Non-numeric or zero ids are rejected with 400.
func RequireID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid ID")
			return
		}

		c.Set(constants.ContextKeyID, id)
		c.Next()
	}
}

// GetID retrieves the path ID parsed by RequireID
func GetID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyID)
	if !exists {
		return 0, false
	}

	id, ok := value.(uint64)
	return id, ok
}
