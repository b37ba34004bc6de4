package routes

import "github.com/gin-gonic/gin"

func setupAssetRoutes(api *gin.RouterGroup, deps *Dependencies) {
	assets := api.Group("/assets")
	{
		assets.POST("", deps.Assets.Create)
		assets.GET("", deps.Assets.List)
		assets.GET("/:id", deps.Assets.Get)
		assets.PATCH("/:id", deps.Assets.Update)
		assets.POST("/:id/soft-delete", deps.Assets.SoftDelete)
		assets.POST("/:id/restore", deps.Assets.Restore)
		assets.DELETE("/:id", deps.Assets.HardDelete)
	}
}
