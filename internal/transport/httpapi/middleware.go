package httpapi

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-catalog/auth"
)

const bearerPrefix = "Bearer "

// Authenticate verifies a bearer token and attaches the caller identity to
// the request context. Requests without an Authorization header continue
// anonymously; the catalog decides whether that is allowed.
func Authenticate(verifier auth.Verifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || token == "" {
			writeError(c, invalidHeader())
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Info("rejected bearer token", "path", c.FullPath(), "error", err)
			writeError(c, err)
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
		)
	}
}
