package video

import (
	"net/http"

	"mediakeep/media-api/internal"
	"mediakeep/media-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoList returns the requester's tenant videos, newest first
func VideoList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	tenantID := c.MustGet("tenantID").(uint)

	videos := []model.Video{}

	err := d.DB.
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&videos).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, videos)
}
