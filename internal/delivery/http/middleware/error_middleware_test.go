package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"contact-form-relay/internal/delivery/http/middleware"
	"contact-form-relay/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func errorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/missing", func(c *gin.Context) {
		c.Error(apperror.NotFound("Route not found"))
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("dial tcp 10.0.0.1:443: connection refused"))
	})
	return r
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestErrorHandler(t *testing.T) {
	t.Run("Should render an AppError with its own status and message", func(t *testing.T) {
		w := getPath(errorRouter(), "/missing")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
		assert.Contains(t, w.Body.String(), "Route not found")
	})

	t.Run("Should hide plain errors behind the generic 500 envelope", func(t *testing.T) {
		w := getPath(errorRouter(), "/boom")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
		assert.Contains(t, w.Body.String(), "Internal Server Error")
		assert.NotContains(t, w.Body.String(), "dial tcp")
	})
}
