package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adcraft/models"
)

// SuccessResponse writes a success envelope with the given payload.
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes an error envelope.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// ValidationErrorResponse writes a 400 with field-level details.
func ValidationErrorResponse(c *gin.Context, details interface{}) {
	c.JSON(http.StatusBadRequest, models.APIResponse{
		Success: false,
		Error:   "validation failed",
		Data:    details,
	})
}

// PaginatedResponse wraps a list payload with paging metadata.
func PaginatedResponse(c *gin.Context, message string, items interface{}, page, limit int, total int64) {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: message,
		Data: models.PaginatedData{
			Items: items,
			Pagination: models.Pagination{
				Page:       page,
				Limit:      limit,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// GetUserFromContext returns the authenticated user set by the auth middleware.
func GetUserFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
