package video

import (
	"net/http"

	"mediakeep/media-api/internal"
	"mediakeep/media-api/internal/access"
	"mediakeep/media-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type visibilityBody struct {
	Visibility string `json:"visibility"`
}

// VideoVisibility flips a video between public and private. Setting
// the value it already has is a no-op success
func VideoVisibility(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	video := fetchByPublicID(c, d)
	if video == nil {
		return
	}

	if err := access.CanMutate(video.TenantID, middleware.RequesterFrom(c)); err != nil {
		c.JSON(access.Status(err), gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var data visibilityBody
	if err := c.ShouldBind(&data); err != nil || !access.ValidVisibility(data.Visibility) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     access.ErrBadVisibility.Error(),
			"requestID": requestID,
		})
		return
	}

	if data.Visibility != video.Visibility {
		if err := d.DB.Model(video).Update("visibility", data.Visibility).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to update video visibility", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		video.Visibility = data.Visibility
	}

	c.JSON(http.StatusOK, video)
}
