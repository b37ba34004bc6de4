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

type AdController struct {
	adService *services.AdService
}

func NewAdController(adService *services.AdService) *AdController {
	return &AdController{adService: adService}
}

func (ac *AdController) Create(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	ad, err := ac.adService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "ad created", ad)
}

func (ac *AdController) Get(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	ad, err := ac.adService.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "ad retrieved", ad)
}

// List filters by folder_id or workspace_id, plus optional status and
// search.
func (ac *AdController) List(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	filter := services.AdListFilter{
		Status:         c.Query("status"),
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

	ads, total, err := ac.adService.List(c.Request.Context(), user.ID, filter, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.PaginatedResponse(c, "ads retrieved", ads, page, limit, total)
}

func (ac *AdController) Update(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	ad, err := ac.adService.Update(c.Request.Context(), id, user.ID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "ad updated", ad)
}

func (ac *AdController) SoftDelete(c *gin.Context) {
	ac.cascadeOp(c, "ad moved to trash", ac.adService.SoftDelete)
}

func (ac *AdController) HardDelete(c *gin.Context) {
	ac.cascadeOp(c, "ad permanently deleted", ac.adService.HardDelete)
}

func (ac *AdController) Restore(c *gin.Context) {
	ac.cascadeOp(c, "ad restored", ac.adService.Restore)
}

func (ac *AdController) cascadeOp(c *gin.Context, message string, op func(ctx context.Context, id, creatorID primitive.ObjectID) (*services.CascadeOutcome, error)) {
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
