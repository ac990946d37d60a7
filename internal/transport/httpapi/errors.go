package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-catalog/failure"
)

// statusFor maps a failure kind to its HTTP status and error code.
func statusFor(kind failure.Kind) (int, string) {
	switch kind {
	case failure.KindValidation:
		return http.StatusBadRequest, failure.CodeValidation
	case failure.KindNotFound:
		return http.StatusNotFound, failure.CodeNotFound
	case failure.KindAuthentication:
		return http.StatusUnauthorized, failure.CodeAuthentication
	case failure.KindAuthorization:
		return http.StatusForbidden, failure.CodeAuthorization
	case failure.KindConstraint:
		return http.StatusConflict, failure.CodeConstraint
	default:
		return http.StatusInternalServerError, failure.CodeUnexpected
	}
}

func writeError(c *gin.Context, err error) {
	status, code := statusFor(failure.Classify(err))
	c.AbortWithStatusJSON(status, gin.H{"error": code, "errors": failure.Messages(err)})
}

func badRequest(c *gin.Context, field string, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":  failure.CodeValidation,
		"errors": []string{field + ": " + err.Error()},
	})
}
