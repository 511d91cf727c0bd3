package utils

import (
	"github.com/gin-gonic/gin"
)

// APIError is the error envelope returned by every failing endpoint.
// Successful responses carry the resource payload directly.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func ErrorResponse(c *gin.Context, code int, message string, err error) {
	response := APIError{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(code, response)
}
