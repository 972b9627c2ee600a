package file

import (
	"fmt"
	"net/http"

	"mediakeep/media-api/internal"
	"mediakeep/media-api/internal/access"
	"mediakeep/media-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileServe streams the stored blob inline so browsers render it
func FileServe(c *gin.Context, d *internal.Deps) {
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

	obj, err := d.Store.Get(c.Request.Context(), file.BlobName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch object from storage",
			zap.String("blobName", file.BlobName),
			zap.String("requestID", requestID),
			zap.Error(err),
		)
		return
	}

	c.DataFromReader(http.StatusOK, obj.ContentLength, obj.ContentType, obj.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`inline; filename=%q`, file.OriginalName),
	})
}
