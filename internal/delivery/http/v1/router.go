package v1

import (
	"contact-form-relay/config"
	"contact-form-relay/internal/delivery/http/middleware"
	"contact-form-relay/internal/delivery/http/response"
	"contact-form-relay/internal/domain"
	"contact-form-relay/pkg/apperror"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	RelayUC domain.RelayUsecase
	Config  *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Public routes: the form post itself lives at the root
	public := r.Group("")
	NewRelayHandler(public, deps.RelayUC, deps.Config)

	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NotFound("Route not found"))
	})

	return r
}
