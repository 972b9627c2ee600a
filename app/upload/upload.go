// Package upload is the HTTP-facing side of the ingestion pipeline.
// It only validates and spools the multipart body, everything else
// happens in the service layer
package upload

import (
	"errors"
	"io"
	"net/http"
	"os"

	"mediakeep/media-api/internal"
	"mediakeep/media-api/internal/service"
	"mediakeep/media-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Upload(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	tenantID := c.MustGet("tenantID").(uint)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to open multipart file", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	visibility := c.PostForm("visibility")

	code, mimeType, err := validators.UploadValidator(fh, visibility)
	if err != nil {
		c.JSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open multipart file", zap.String("requestID", requestID), zap.Error(err))
		return
	}
	defer f.Close()

	temp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create temporary file", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	size, err := io.Copy(temp, f)
	temp.Close()
	if err != nil {
		os.Remove(temp.Name())

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to copy data to temporary file", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	// The pipeline owns the temp file from here on and removes it
	// whatever happens
	result, err := d.Uploader.Do(c.Request.Context(), &service.UploadRequest{
		TempPath:     temp.Name(),
		OriginalName: fh.Filename,
		MimeType:     mimeType,
		Size:         size,
		UploaderID:   userID,
		TenantID:     tenantID,
		Visibility:   visibility,
	})
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Internal server error"

		if errors.Is(err, service.ErrTransform) {
			status = http.StatusUnprocessableEntity
			msg = "File could not be processed"
		}

		c.JSON(status, gin.H{
			"error":     msg,
			"requestID": requestID,
		})

		zap.L().Error("Upload pipeline failed",
			zap.String("requestID", requestID),
			zap.String("userID", userID),
			zap.Error(err),
		)
		return
	}

	c.JSON(http.StatusCreated, result)
}
