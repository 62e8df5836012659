package router

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flavorinthejar/smakosz/backend/internal/api"
	"github.com/flavorinthejar/smakosz/backend/internal/middleware"
	"github.com/flavorinthejar/smakosz/backend/internal/service"
)

// Dependencies are the services and settings the routes are built from.
type Dependencies struct {
	Recipes *service.RecipeService
	Media   *service.MediaService
	Spices  *service.SpiceService

	AdminSecret    string
	AllowedOrigins []string
	MaxBodyBytes   int64
	// RateLimiter is optional; analyze endpoints are unlimited without it.
	RateLimiter *middleware.RateLimiter

	Log *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(requestid.New())
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.ErrorHandler(deps.Log))
	if deps.MaxBodyBytes > 0 {
		// Multipart framing needs some room on top of the file itself.
		router.Use(middleware.BodySizeLimit(deps.MaxBodyBytes + 1<<20))
	}

	health := api.NewHealthHandler(deps.Recipes)
	health.RegisterRoutes(router)

	// API v1 routes
	v1 := router.Group("/api/v1")
	health.RegisterRoutes(v1)

	var limits []gin.HandlerFunc
	if deps.RateLimiter != nil {
		limits = append(limits, deps.RateLimiter.Middleware())
	}
	api.NewAnalyzeHandler(deps.Recipes, deps.Media, deps.Log).RegisterRoutes(v1, limits...)
	api.NewRecipeHandler(deps.Recipes, deps.AdminSecret).RegisterRoutes(v1)
	api.NewSpiceHandler(deps.Spices).RegisterRoutes(v1)

	return router
}
