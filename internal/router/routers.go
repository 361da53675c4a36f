package router

import (
	"time"

	"github.com/daycarehub/backend/config"
	"github.com/daycarehub/backend/internal/handler"
	"github.com/daycarehub/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler       *handler.AuthHandler
	userHandler       *handler.UserHandler
	daycareHandler    *handler.DaycareHandler
	engagementHandler *handler.EngagementHandler
	cacheHandler      *handler.CacheHandler
	healthHandler     *handler.HealthHandler

	validMw *middleware.ValidationMiddleware
	authMw  *middleware.AuthMiddleware
	Config  *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	daycare *handler.DaycareHandler,
	engagement *handler.EngagementHandler,
	cache *handler.CacheHandler,
	health *handler.HealthHandler,
	validMw *middleware.ValidationMiddleware,
	authMw *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:       auth,
		userHandler:       user,
		daycareHandler:    daycare,
		engagementHandler: engagement,
		cacheHandler:      cache,
		healthHandler:     health,
		validMw:           validMw,
		authMw:            authMw,
		Config:            cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if !r.Config.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestContext())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(r.Config.App.AllowedOrigins))
	router.Use(middleware.RequestTimeout(r.Config.App.Timeout))

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.BasicHealth)
		api.GET("/health/full", r.healthHandler.HealthCheck)

		v1 := api.Group("/v1")
		{
			v1.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))

			r.authRoutes(v1)
			r.daycareRoutes(v1)
			r.userRoutes(v1)
			r.engagementRoutes(v1)
			r.cacheRoutes(v1)
		}
	}

	return router
}

// cacheRoutes defines cache management routes.
func (r *Router) cacheRoutes(rg *gin.RouterGroup) {
	cache := rg.Group("/cache")
	cache.Use(r.authMw.RequireAuth())
	{
		cache.GET("/stats", r.cacheHandler.Stats)
		cache.POST("/invalidate/searches", r.cacheHandler.InvalidateSearches)
		cache.POST("/invalidate/metadata", r.cacheHandler.InvalidateMetadata)
		cache.DELETE("/clear", r.cacheHandler.Clear)
	}
}
