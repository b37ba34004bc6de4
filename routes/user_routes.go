package routes

import "github.com/gin-gonic/gin"

func setupUserRoutes(api *gin.RouterGroup, deps *Dependencies) {
	users := api.Group("/users")
	{
		users.GET("/me", deps.Users.Me)
		users.PATCH("/me", deps.Users.UpdateMe)
	}
}
