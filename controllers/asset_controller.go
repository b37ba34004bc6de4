package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adcraft/models"
	"adcraft/services"
	"adcraft/utils"
)

type AssetController struct {
	assetService *services.AssetService
}

func NewAssetController(assetService *services.AssetService) *AssetController {
	return &AssetController{assetService: assetService}
}

func (ac *AssetController) Create(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	asset, err := ac.assetService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "asset created", asset)
}

func (ac *AssetController) Get(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	asset, err := ac.assetService.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "asset retrieved", asset)
}

// List filters by folder_id or workspace_id, plus optional type and search.
func (ac *AssetController) List(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	filter := services.AssetListFilter{
		AssetType:      c.Query("asset_type"),
		Search:         c.Query("search"),
		IncludeDeleted: boolQuery(c, "include_deleted"),
	}
	if v := c.Query("folder_id"); v != "" {
		id, err := utils.StringToObjectID(v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid folder_id")
			return
		}
		filter.FolderID = &id
	}
	if v := c.Query("workspace_id"); v != "" {
		id, err := utils.StringToObjectID(v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid workspace_id")
			return
		}
		filter.WorkspaceID = &id
	}
	if filter.FolderID == nil && filter.WorkspaceID == nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "folder_id or workspace_id is required")
		return
	}
	page, limit := pageParams(c)

	assets, total, err := ac.assetService.List(c.Request.Context(), user.ID, filter, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.PaginatedResponse(c, "assets retrieved", assets, page, limit, total)
}

func (ac *AssetController) Update(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	asset, err := ac.assetService.Update(c.Request.Context(), id, user.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "asset updated", asset)
}

func (ac *AssetController) SoftDelete(c *gin.Context) {
	ac.cascadeOp(c, "asset moved to trash", ac.assetService.SoftDelete)
}

func (ac *AssetController) HardDelete(c *gin.Context) {
	ac.cascadeOp(c, "asset permanently deleted", ac.assetService.HardDelete)
}

func (ac *AssetController) Restore(c *gin.Context) {
	ac.cascadeOp(c, "asset restored", ac.assetService.Restore)
}

func (ac *AssetController) cascadeOp(c *gin.Context, message string, op func(ctx context.Context, id, creatorID primitive.ObjectID) (*services.CascadeOutcome, error)) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	outcome, err := op(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, message, models.CascadeResult{
		ParentAffected: outcome.ParentAffected,
		Counts:         outcome.Counts,
	})
}
