package video

import (
	"net/http"

	"mediakeep/media-api/internal"
	"mediakeep/media-api/internal/access"
	"mediakeep/media-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoThumbnail streams the still-frame thumbnail. Thumbnails are
// immutable once written, so clients may cache them aggressively
func VideoThumbnail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	video := fetchByPublicID(c, d)
	if video == nil {
		return
	}

	if err := access.CanRead(video.TenantID, video.Visibility, middleware.RequesterFrom(c)); err != nil {
		c.JSON(access.Status(err), gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if video.ThumbName == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Video has no thumbnail",
			"requestID": requestID,
		})
		return
	}

	obj, err := d.Store.Get(c.Request.Context(), video.ThumbName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch thumbnail from storage",
			zap.String("thumbName", video.ThumbName),
			zap.String("requestID", requestID),
			zap.Error(err),
		)
		return
	}

	c.DataFromReader(http.StatusOK, obj.ContentLength, obj.ContentType, obj.Body, map[string]string{
		"Cache-Control": "public, max-age=31536000, immutable",
	})
}
