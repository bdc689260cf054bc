// utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InvalidDataMessage is the top-level message of a 422 response.
const InvalidDataMessage = "The given data was invalid."

// RespondWithError aborts the request with {"error": message}.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// RespondWithValidationErrors aborts with 422 and one entry per invalid field.
func RespondWithValidationErrors(c *gin.Context, errs FieldErrors) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"message": InvalidDataMessage,
		"errors":  errs,
	})
}
