package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"todo-api/internal/auth"
)

const ctxUserIDKey = "user_id"

// UserIDFromContext returns the user id set by authRequired, or 0 when
// the request was never authenticated. Handlers must treat 0 as
// unauthenticated and fail closed.
func UserIDFromContext(c *gin.Context) int64 {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// authRequired verifies the bearer token and stores the user id on the
// request context. Every failure class maps to the same 401 body; the
// specific reason only reaches the server log.
func authRequired(tokens *auth.TokenIssuer, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c.GetHeader("Authorization"))
		if err == nil {
			var userID int64
			userID, err = tokens.Verify(tokenString)
			if err == nil {
				c.Set(ctxUserIDKey, userID)
				c.Next()
				return
			}
		}

		logger.WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"reason": err.Error(),
		}).Debug("request rejected")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrTokenMissing
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", auth.ErrTokenMalformed
	}
	return strings.TrimSpace(parts[1]), nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestLogger tags every request with an id and logs it on completion.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request")
	}
}
