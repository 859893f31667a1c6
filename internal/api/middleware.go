package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/postalclerk/clerk-server/internal/auth"
	"github.com/postalclerk/clerk-server/internal/models"
	"github.com/postalclerk/clerk-server/internal/utils"
	"go.uber.org/zap"
)

const (
	clerkIDKey      = "clerkId"
	requestIDKey    = "requestId"
	requestIDHeader = "X-Request-ID"
)

// AuthMiddleware returns a Gin middleware for authentication
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			// The web client sends the raw token in its own header on some calls
			tokenString = strings.TrimSpace(c.GetHeader("token"))
		}

		if tokenString == "" {
			unauthorized(c)
			return
		}

		clerkID, err := tokens.Verify(tokenString)
		if err != nil {
			unauthorized(c)
			return
		}

		// Set clerk ID in the context
		c.Set(clerkIDKey, clerkID)
		c.Next()
	}
}

// ClerkID returns the authenticated clerk, or 0 outside AuthMiddleware
func ClerkID(c *gin.Context) int64 {
	return c.GetInt64(clerkIDKey)
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
		Success: false,
		Message: "Not authorized, login again",
	})
}

// RequestLogger tags each request with an id and logs it once it completes
func RequestLogger(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
			return
		}
		logger.Info("request handled", fields...)
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
