package rest

import (
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
)

// requestID reuses an incoming X-Request-Id or generates one, and echoes it
// on the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
			requestIDKey, c.GetString(requestIDKey),
		)
	}
}

func recovery(l logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		l.Error(c.Request.Context(), "panic recovered",
			"panic", rec,
			"path", c.Request.URL.Path,
			requestIDKey, c.GetString(requestIDKey),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, messageResponse{Message: msgInternalError})
	})
}

// errorResponder is the single place unexpected handler errors end up:
// handlers attach them with c.Error and return without writing.
func errorResponder(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, e := range c.Errors {
			l.Error(c.Request.Context(), "request failed",
				"error", e.Err,
				"path", c.Request.URL.Path,
				requestIDKey, c.GetString(requestIDKey),
			)
		}

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, messageResponse{Message: msgInternalError})
		}
	}
}
