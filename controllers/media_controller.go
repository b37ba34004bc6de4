package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adcraft/models"
	"adcraft/services"
	"adcraft/utils"
)

type MediaController struct {
	mediaService *services.MediaService
}

func NewMediaController(mediaService *services.MediaService) *MediaController {
	return &MediaController{mediaService: mediaService}
}

// PresignUpload hands out a presigned PUT URL for a direct-to-storage
// upload.
func (mc *MediaController) PresignUpload(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	upload, err := mc.mediaService.PresignUpload(c.Request.Context(), user.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "upload url generated", upload)
}

// DeleteObject removes an uploaded object that was never attached to a row.
func (mc *MediaController) DeleteObject(c *gin.Context) {
	if _, ok := utils.GetUserFromContext(c); !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	key := c.Query("key")
	if key == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "key is required")
		return
	}

	deleted := mc.mediaService.DeleteObject(c.Request.Context(), key)
	utils.SuccessResponse(c, http.StatusOK, "object delete processed", gin.H{"deleted": deleted})
}
