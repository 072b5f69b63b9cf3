package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/api"
	"github.com/macrolog/backend/internal/middleware"
	"github.com/macrolog/backend/internal/service"
	"github.com/macrolog/backend/internal/web"
)

// HealthCheck returns the health status of the service
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "macrolog API is running",
	})
}

// SetupRouter configures the application routes: the rendered-page
// surface at the root and the JSON API under /api.
func SetupRouter(
	authHandler *api.AuthHandler,
	foodHandler *api.FoodHandler,
	webHandler *web.Handler,
	authService *service.AuthService,
	templatesGlob string,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	if templatesGlob != "" {
		router.LoadHTMLGlob(templatesGlob)
	}

	router.GET("/health", HealthCheck)

	// JSON API, bearer-token auth
	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup)

	protected := apiGroup.Group("")
	protected.Use(middleware.TokenAuth(authService))
	foodHandler.RegisterRoutes(protected)

	// Rendered pages, session auth
	webHandler.RegisterRoutes(router)

	return router
}
