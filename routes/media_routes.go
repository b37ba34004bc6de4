package routes

import "github.com/gin-gonic/gin"

func setupMediaRoutes(api *gin.RouterGroup, deps *Dependencies) {
	media := api.Group("/media")
	{
		media.POST("/presign", deps.Media.PresignUpload)
		media.DELETE("/object", deps.Media.DeleteObject)
	}
}
