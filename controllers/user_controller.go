package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adcraft/models"
	"adcraft/services"
	"adcraft/utils"
)

type UserController struct {
	userService *services.UserService
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Me returns the authenticated user's profile.
func (uc *UserController) Me(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "profile retrieved", user)
}

// UpdateMe patches the authenticated user's profile.
func (uc *UserController) UpdateMe(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	updated, err := uc.userService.Update(c.Request.Context(), user.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "profile updated", updated)
}
