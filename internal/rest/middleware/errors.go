package middleware

import (
	ierr "github.com/lordbyaku/lbpos/internal/errors"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors attached by handlers into the standard JSON
// error envelope with the status mapped from the error class.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)
		if status >= 500 {
			log.WithContext(c.Request.Context()).Errorw("request failed",
				"path", c.Request.URL.Path,
				"error", err)
		}
		c.AbortWithStatusJSON(status, ierr.NewErrorResponse(err))
	}
}
