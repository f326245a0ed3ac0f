package httptransport

import (
	"github.com/gin-gonic/gin"

	"bagtrack-server-go/internal/platform/errors"
)

// APIResponse is the uniform success envelope for API endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// RespondSuccess writes a success envelope.
func RespondSuccess(c *gin.Context, httpStatus int, data interface{}, message string) {
	if message == "" {
		message = "ok"
	}

	c.JSON(httpStatus, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondError maps a typed error onto its HTTP status and writes the
// failure envelope. Untyped errors collapse to a generic message so no
// internal detail crosses the boundary.
func RespondError(c *gin.Context, err error) {
	c.JSON(errors.HTTPStatus(err), gin.H{
		"success": false,
		"message": errors.ClientMessage(err),
	})
}
