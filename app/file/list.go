package file

import (
	"net/http"

	"mediakeep/media-api/internal"
	"mediakeep/media-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileList returns the requester's tenant files, newest first
func FileList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	tenantID := c.MustGet("tenantID").(uint)

	files := []model.File{}

	err := d.DB.
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&files).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, files)
}
