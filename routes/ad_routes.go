package routes

import "github.com/gin-gonic/gin"

func setupAdRoutes(api *gin.RouterGroup, deps *Dependencies) {
	ads := api.Group("/ads")
	{
		ads.POST("", deps.Ads.Create)
		ads.GET("", deps.Ads.List)
		ads.GET("/:id", deps.Ads.Get)
		ads.PATCH("/:id", deps.Ads.Update)
		ads.POST("/:id/soft-delete", deps.Ads.SoftDelete)
		ads.POST("/:id/restore", deps.Ads.Restore)
		ads.DELETE("/:id", deps.Ads.HardDelete)
	}
}
