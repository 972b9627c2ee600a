// Package metadata exposes the raw key/value rows the pipeline
// extracted during ingestion
package metadata

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

// MetadataFetch looks a resource up by videoId (public ID) or
// blobName and returns its extracted metadata, subject to the same
// read gate as the resource itself
func MetadataFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	videoID := c.Query("videoId")
	blobName := c.Query("blobName")

	if videoID == "" && blobName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Either videoId or blobName must be provided",
			"requestID": requestID,
		})
		return
	}

	var (
		query *gorm.DB
		rows  []model.Metadata
	)

	if videoID != "" {
		video, ok := findVideo(c, d, "public_id = ?", videoID)
		if !ok {
			return
		}

		query = d.DB.Where("video_id = ?", video.ID)
	} else {
		// A blob name can belong to a video or a plain file, videos
		// are more common so they go first
		if video, ok := findVideo(c, d, "blob_name = ?", blobName); ok && video != nil {
			query = d.DB.Where("video_id = ?", video.ID)
		} else if !ok {
			return
		} else {
			file, ok := findFile(c, d, blobName)
			if !ok {
				return
			}

			query = d.DB.Where("file_id = ?", file.ID)
		}
	}

	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch metadata rows", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, rows)
}

// findVideo returns (nil, true) when no video matched so the caller
// can fall through to files. Any written response returns ok=false
func findVideo(c *gin.Context, d *internal.Deps, cond string, arg string) (*model.Video, bool) {
	requestID := c.MustGet("requestID").(string)

	var video model.Video

	err := d.DB.Where(cond, arg).First(&video).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			if cond == "public_id = ?" {
				c.JSON(http.StatusNotFound, gin.H{
					"error":     "Video not found",
					"requestID": requestID,
				})
				return nil, false
			}

			return nil, true
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch video from db", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	if err := access.CanRead(video.TenantID, video.Visibility, middleware.RequesterFrom(c)); err != nil {
		c.JSON(access.Status(err), gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return nil, false
	}

	return &video, true
}

func findFile(c *gin.Context, d *internal.Deps, blobName string) (*model.File, bool) {
	requestID := c.MustGet("requestID").(string)

	var file model.File

	err := d.DB.Where("blob_name = ?", blobName).First(&file).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "No resource with that blob name",
				"requestID": requestID,
			})
			return nil, false
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file from db", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	if err := access.CanRead(file.TenantID, file.Visibility, middleware.RequesterFrom(c)); err != nil {
		c.JSON(access.Status(err), gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return nil, false
	}

	return &file, true
}
