package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adcraft/services"
	"adcraft/utils"
)

// handleServiceError maps service sentinels to HTTP statuses.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, services.ErrAlreadyDeleted):
		utils.ErrorResponse(c, http.StatusConflict, "resource is already marked for deletion")
	case errors.Is(err, services.ErrNotDeleted):
		utils.ErrorResponse(c, http.StatusConflict, "resource is not marked as deleted")
	case errors.Is(err, services.ErrDuplicateName):
		utils.ErrorResponse(c, http.StatusConflict, "name already in use")
	case errors.Is(err, services.ErrInvalidStatusTransition):
		utils.ErrorResponse(c, http.StatusConflict, "invalid status transition")
	case errors.Is(err, services.ErrInvalidMagicLink):
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired magic link")
	case errors.Is(err, utils.ErrInvalidToken), errors.Is(err, utils.ErrExpiredToken):
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}

// pathObjectID parses the named path parameter as an ObjectID.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := utils.StringToObjectID(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// pageParams reads page/limit query values, clamped to sane bounds.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func boolQuery(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}
