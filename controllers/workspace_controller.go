package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adcraft/models"
	"adcraft/services"
	"adcraft/utils"
)

type WorkspaceController struct {
	workspaceService *services.WorkspaceService
}

func NewWorkspaceController(workspaceService *services.WorkspaceService) *WorkspaceController {
	return &WorkspaceController{workspaceService: workspaceService}
}

func (wc *WorkspaceController) Create(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	workspace, err := wc.workspaceService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "workspace created", workspace)
}

func (wc *WorkspaceController) Get(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	workspace, err := wc.workspaceService.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "workspace retrieved", workspace)
}

func (wc *WorkspaceController) List(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	page, limit := pageParams(c)

	workspaces, total, err := wc.workspaceService.List(
		c.Request.Context(), user.ID, page, limit, boolQuery(c, "include_deleted"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.PaginatedResponse(c, "workspaces retrieved", workspaces, page, limit, total)
}

func (wc *WorkspaceController) Update(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	workspace, err := wc.workspaceService.Update(c.Request.Context(), id, user.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "workspace updated", workspace)
}

// GetDeletePreview reports how many children a delete would touch.
func (wc *WorkspaceController) GetDeletePreview(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	preview, err := wc.workspaceService.GetDeletePreview(c.Request.Context(), id, user.ID)
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

func (wc *WorkspaceController) SoftDelete(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	outcome, err := wc.workspaceService.SoftDelete(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "workspace moved to trash", models.CascadeResult{
		ParentAffected: outcome.ParentAffected,
		Counts:         outcome.Counts,
	})
}

func (wc *WorkspaceController) HardDelete(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	outcome, err := wc.workspaceService.HardDelete(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "workspace permanently deleted", models.CascadeResult{
		ParentAffected: outcome.ParentAffected,
		Counts:         outcome.Counts,
	})
}

func (wc *WorkspaceController) Restore(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	outcome, err := wc.workspaceService.Restore(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "workspace restored", models.CascadeResult{
		ParentAffected: outcome.ParentAffected,
		Counts:         outcome.Counts,
	})
}
