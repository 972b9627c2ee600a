package file

import (
	"net/http"

	"mediakeep/media-api/internal"
	"mediakeep/media-api/internal/access"
	"mediakeep/media-api/internal/model"
	"mediakeep/media-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fetchByPublicID loads a file by its public ID and writes the error
// response itself when that fails. Callers bail out on nil
func fetchByPublicID(c *gin.Context, d *internal.Deps) *model.File {
	requestID := c.MustGet("requestID").(string)

	publicID := c.Param("id")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No file ID provided",
			"requestID": requestID,
		})
		return nil
	}

	var file model.File

	err := d.DB.
		Where("public_id = ?", publicID).
		First(&file).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return nil
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file from db", zap.Error(err), zap.String("requestID", requestID))
		return nil
	}

	return &file
}

func FileFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	file := fetchByPublicID(c, d)
	if file == nil {
		return
	}

	if err := access.CanRead(file.TenantID, file.Visibility, middleware.RequesterFrom(c)); err != nil {
		c.JSON(access.Status(err), gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, file)
}
