package routes

import "github.com/gin-gonic/gin"

func setupFolderRoutes(api *gin.RouterGroup, deps *Dependencies) {
	folders := api.Group("/folders")
	{
		folders.POST("", deps.Folders.Create)
		folders.GET("", deps.Folders.List)
		folders.GET("/:id", deps.Folders.Get)
		folders.PATCH("/:id", deps.Folders.Update)
		folders.GET("/:id/delete-preview", deps.Folders.GetDeletePreview)
		folders.POST("/:id/soft-delete", deps.Folders.SoftDelete)
		folders.POST("/:id/restore", deps.Folders.Restore)
		folders.DELETE("/:id", deps.Folders.HardDelete)
	}
}
