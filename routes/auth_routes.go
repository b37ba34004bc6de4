package routes

import "github.com/gin-gonic/gin"

func setupAuthRoutes(api *gin.RouterGroup, deps *Dependencies) {
	auth := api.Group("/auth")
	{
		auth.POST("/magic-link", deps.Auth.RequestMagicLink)
		auth.POST("/verify", deps.Auth.VerifyMagicLink)
		auth.POST("/refresh", deps.Auth.Refresh)
	}
}
