package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func Success(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a failure envelope. detail is dropped by callers in production.
func Error(c *gin.Context, code int, message string, errors []string, detail string) {
	c.JSON(code, Response{
		Success: false,
		Message: message,
		Errors:  errors,
		Error:   detail,
	})
}
