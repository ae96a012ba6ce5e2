package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Response is the envelope every endpoint writes.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error writes a failure envelope. details may be an error, a validation.Errors
// map or any JSON value; plain errors are flattened to their message.
func Error(c *gin.Context, statusCode int, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Error:   normalizeDetails(details),
	})
}

func normalizeDetails(details interface{}) interface{} {
	err, ok := details.(error)
	if !ok {
		return details
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return verrs
	}
	return err.Error()
}
