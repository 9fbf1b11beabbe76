package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/spendwise/expense-api/internal/logger"
	"github.com/spendwise/expense-api/internal/service"
)

const userIDKey = "userID"

// bearerAuth resolves the Authorization header to a user id and stores it on
// the context. Missing, malformed, expired and forged tokens all get 401.
func bearerAuth(accounts *service.Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid Authorization header"})
			return
		}
		claims, err := accounts.Authenticate(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}
		c.Set(userIDKey, claims.UserID())
		c.Next()
	}
}

// currentUser returns the id set by bearerAuth.
func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// requestLogger logs one line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		event := logger.Log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Log.Error()
		case status >= http.StatusBadRequest:
			event = logger.Log.Warn()
		}
		if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
			event = event.Str("trace_id", sc.TraceID().String())
		}
		if user := currentUser(c); user != "" {
			event = event.Str("user", logger.HashUserID(user))
		}
		event.
			Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}
