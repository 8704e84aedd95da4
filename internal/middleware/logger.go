package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/axellelanca/surl/internal/metrics"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key holding the request id.
const requestIDKey = "request_id"

// RequestID reuses the incoming X-Request-ID or generates one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Entry returns a log entry carrying the request id of c.
func Entry(c *gin.Context) *logrus.Entry {
	return logrus.WithField(requestIDKey, c.GetString(requestIDKey))
}

// Logger logs one line per request once it is processed.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := Entry(c).WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start),
			"client_ip": c.ClientIP(),
		})

		if c.Writer.Status() >= 500 {
			entry.Error("Request failed")
		} else {
			entry.Info("Request processed")
		}
	}
}

// Metrics counts requests by route template, so short codes do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
