package types

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler utility functions to reduce duplication across handlers

// RequireParam extracts a URL parameter and sends a bad request response
// when it is empty
func RequireParam(c *gin.Context, paramName string) (string, bool) {
	value := c.Param(paramName)
	if value == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Missing " + paramName,
		})
		return "", false
	}
	return value, true
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// SendConflict sends a standardized conflict response
func SendConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// SendInternalError sends a standardized internal error response
func SendInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// SendSuccess sends a 200 response with the given data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendAccepted sends a 202 response with the given data
func SendAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, data)
}
