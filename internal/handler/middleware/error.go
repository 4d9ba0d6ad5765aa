package middleware

import (
	"log/slog"
	"net/http"

	"coupon-service/internal/handler/httperr"
	"coupon-service/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLines = 12

// ErrorHandler logs the errors handlers attached to the context and writes a
// fallback body when a handler aborted without one.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, e := range c.Errors {
			resp, ok := e.Meta.(httperr.Response)
			if !ok || resp.Status >= http.StatusInternalServerError {
				slog.ErrorContext(c.Request.Context(), "request failed",
					"error", e.Err, "method", c.Request.Method, "path", c.FullPath(),
					"stack", errs.ExtractStackLines(e.Err, stackLines))
				continue
			}
			slog.DebugContext(c.Request.Context(), "request refused",
				"status", resp.Status, "error", e.Err, "path", c.FullPath())
		}

		if c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		if resp, ok := last.Meta.(httperr.Response); ok && last.IsType(gin.ErrorTypePublic) {
			c.JSON(resp.Status, resp)
			return
		}
		resp := httperr.Internal()
		c.JSON(resp.Status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(c.Request.Context(), "recovered from panic",
					"panic", rec, "method", c.Request.Method, "path", c.Request.URL.Path)

				resp := httperr.Internal()
				c.AbortWithStatusJSON(resp.Status, resp)
			}
		}()
		c.Next()
	}
}
