package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adcraft/models"
	"adcraft/services"
	"adcraft/utils"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RequestMagicLink sends a login link. Always answers 200 so callers cannot
// enumerate accounts.
func (ac *AuthController) RequestMagicLink(c *gin.Context) {
	var req models.MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := ac.authService.RequestMagicLink(c.Request.Context(), req.Email); err != nil {
		utils.Logger().Error("failed to send magic link")
	}
	utils.SuccessResponse(c, http.StatusOK, "if the address is valid, a login link has been sent", nil)
}

// VerifyMagicLink exchanges a one-time token for a JWT pair.
func (ac *AuthController) VerifyMagicLink(c *gin.Context) {
	var req models.VerifyMagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user, pair, err := ac.authService.VerifyMagicLink(c.Request.Context(), req.Email, req.Token)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "authenticated", gin.H{
		"user":   user,
		"tokens": pair,
	})
}

// Refresh trades a refresh token for a new pair.
func (ac *AuthController) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	pair, err := ac.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "tokens refreshed", pair)
}
