package models

import (
	"github.com/gin-gonic/gin"
)

// ApiError is the machine-readable error body every endpoint returns on
// failure. Error names the offending field for validation problems.
type ApiError struct {
	Error           string `json:"error"`
	RequestedEntity string `json:"requested_entity,omitempty"`
}

func ErrorResponse(c *gin.Context, message string) ApiError {
	return ApiError{
		Error:           message,
		RequestedEntity: c.Request.Method + " " + c.FullPath(),
	}
}
