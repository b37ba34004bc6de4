package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adcraft/controllers"
	"adcraft/database"
	"adcraft/middleware"
	"adcraft/services"
	"adcraft/utils"
)

// Dependencies carries everything the route tree needs.
type Dependencies struct {
	JWTManager  *utils.JWTManager
	AuthService *services.AuthService
	RateLimiter *middleware.RateLimiter

	Auth       *controllers.AuthController
	Workspaces *controllers.WorkspaceController
	Folders    *controllers.FolderController
	Assets     *controllers.AssetController
	Ads        *controllers.AdController
	Media      *controllers.MediaController
	Users      *controllers.UserController
}

// Setup wires middleware and all route groups onto the engine.
func Setup(r *gin.Engine, deps *Dependencies, allowedOrigins []string) {
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(allowedOrigins))
	r.Use(deps.RateLimiter.Middleware())

	r.GET("/health", healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	setupAuthRoutes(api, deps)

	authed := api.Group("")
	authed.Use(middleware.Auth(deps.JWTManager, deps.AuthService))

	setupWorkspaceRoutes(authed, deps)
	setupFolderRoutes(authed, deps)
	setupAssetRoutes(authed, deps)
	setupAdRoutes(authed, deps)
	setupMediaRoutes(authed, deps)
	setupUserRoutes(authed, deps)
}

func healthHandler(c *gin.Context) {
	status := http.StatusOK
	overall := "ok"
	db := "ok"
	if err := database.GetManager().HealthCheck(); err != nil {
		status = http.StatusServiceUnavailable
		overall = "degraded"
		db = "unavailable"
	}
	c.JSON(status, gin.H{
		"status":   overall,
		"database": db,
	})
}
