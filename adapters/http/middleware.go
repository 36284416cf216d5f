package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
	"github.com/khoahotran/profile-directory/pkg/response"
)

// ErrorMiddleware renders the last error a handler pushed with c.Error.
// Details are only exposed outside production.
func ErrorMiddleware(log logger.Logger, exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperror.As(err)
		status := apperror.ToHTTPStatus(appErr)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.String("kind", apperror.Kind(appErr)),
		}
		if status >= 500 {
			log.Error("Request failed", appErr, fields...)
		} else {
			log.Warn("Request rejected", append(fields, zap.String("details", appErr.Details))...)
		}

		detail := ""
		if exposeDetails {
			detail = appErr.Details
			if appErr.Err != nil && status >= 500 {
				detail = appErr.Err.Error()
			}
		}
		response.Error(c, status, appErr.Message, appErr.Fields, detail)
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
