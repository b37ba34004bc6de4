package routes

import "github.com/gin-gonic/gin"

func setupWorkspaceRoutes(api *gin.RouterGroup, deps *Dependencies) {
	workspaces := api.Group("/workspaces")
	{
		workspaces.POST("", deps.Workspaces.Create)
		workspaces.GET("", deps.Workspaces.List)
		workspaces.GET("/:id", deps.Workspaces.Get)
		workspaces.PATCH("/:id", deps.Workspaces.Update)
		workspaces.GET("/:id/delete-preview", deps.Workspaces.GetDeletePreview)
		workspaces.POST("/:id/soft-delete", deps.Workspaces.SoftDelete)
		workspaces.POST("/:id/restore", deps.Workspaces.Restore)
		workspaces.DELETE("/:id", deps.Workspaces.HardDelete)
	}
}
