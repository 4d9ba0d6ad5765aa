//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"coupon-service/internal/handler/api"
	"coupon-service/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(err error) *gin.Engine {
		h := api.NewHealthHandler(pingFunc(func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return err
		}))
		r := gin.New()
		r.GET("/health", h.Live)
		r.GET("/health/ready", h.Ready)
		return r
	}

	t.Run("live never touches the database", func(t *testing.T) {
		rec := httptest.PerformRequest(t, newRouter(errors.New("down")), http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ready", func(t *testing.T) {
		var body map[string]string
		rec := httptest.PerformRequest(t, newRouter(nil), http.MethodGet, "/health/ready", nil, "")
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, "ok", body["database"])
	})

	t.Run("database down", func(t *testing.T) {
		rec := httptest.PerformRequest(t, newRouter(errors.New("connection refused")), http.MethodGet, "/health/ready", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusServiceUnavailable, "Database unavailable")
	})
}
