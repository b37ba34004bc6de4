package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adcraft/models"
	"adcraft/services"
	"adcraft/utils"
)

type FolderController struct {
	folderService *services.FolderService
}

func NewFolderController(folderService *services.FolderService) *FolderController {
	return &FolderController{folderService: folderService}
}

func (fc *FolderController) Create(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	folder, err := fc.folderService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "folder created", folder)
}

func (fc *FolderController) Get(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	folder, err := fc.folderService.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "folder retrieved", folder)
}

// List returns the folders of the workspace named in the query string.
func (fc *FolderController) List(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	workspaceID, err := utils.StringToObjectID(c.Query("workspace_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "workspace_id is required")
		return
	}
	page, limit := pageParams(c)

	folders, total, err := fc.folderService.ListByWorkspace(
		c.Request.Context(), workspaceID, user.ID, page, limit, boolQuery(c, "include_deleted"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.PaginatedResponse(c, "folders retrieved", folders, page, limit, total)
}

func (fc *FolderController) Update(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	folder, err := fc.folderService.Update(c.Request.Context(), id, user.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "folder updated", folder)
}

func (fc *FolderController) GetDeletePreview(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	preview, err := fc.folderService.GetDeletePreview(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "delete preview", models.DeletePreview{
		Parent:        preview.Parent,
		Counts:        preview.Counts,
		TotalAffected: preview.TotalAffected,
	})
}

func (fc *FolderController) SoftDelete(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	outcome, err := fc.folderService.SoftDelete(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "folder moved to trash", models.CascadeResult{
		ParentAffected: outcome.ParentAffected,
		Counts:         outcome.Counts,
	})
}

func (fc *FolderController) HardDelete(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	outcome, err := fc.folderService.HardDelete(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "folder permanently deleted", models.CascadeResult{
		ParentAffected: outcome.ParentAffected,
		Counts:         outcome.Counts,
	})
}

func (fc *FolderController) Restore(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	outcome, err := fc.folderService.Restore(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "folder restored", models.CascadeResult{
		ParentAffected: outcome.ParentAffected,
		Counts:         outcome.Counts,
	})
}
