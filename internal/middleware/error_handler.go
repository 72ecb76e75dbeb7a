package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moneyhive/internal/apperr"
	"moneyhive/internal/httpapi"
)

// ErrorHandlerMiddleware recovers panics and drains c.Errors, mapping
// any *apperr.Error to its HTTP status via httpapi.RespondError.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLogger(c)

		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("error", r),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("client_ip", c.ClientIP()),
					zap.Stack("stacktrace"),
				)
				if err, ok := r.(error); ok {
					httpapi.RespondError(c, err)
				} else {
					httpapi.RespondError(c, apperr.Store(errors.New("panic")))
				}
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			logger.Error("request error",
				zap.Error(err),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			httpapi.RespondError(c, err)
			c.Abort()
		}
	}
}

// RecoveryMiddleware provides panic recovery for handlers that don't
// go through ErrorHandlerMiddleware's own recover.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger := GetLogger(c)
		logger.Error("panic recovered in recovery middleware",
			zap.Any("error", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.Stack("stacktrace"),
		)
		httpapi.RespondError(c, apperr.Store(errors.New("panic")))
		c.Abort()
	})
}
