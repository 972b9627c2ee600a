package tenant

import (
	"net/http"

	"mediakeep/media-api/internal"
	"mediakeep/media-api/internal/model"
	"mediakeep/media-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type switchBody struct {
	TenantID uint `json:"tenant_id"`
}

// TenantSwitch moves the user to another tenant and hands back a
// re-signed token. The old token keeps its old tenant claim, so the
// client must swap tokens to see the new tenant's resources
func TenantSwitch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data switchBody
	if err := c.ShouldBind(&data); err != nil || data.TenantID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "A valid tenant_id is required",
			"requestID": requestID,
		})
		return
	}

	var target model.Tenant

	if err := d.DB.First(&target, data.TenantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Tenant not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch tenant from db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var user model.User

	if err := d.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user from db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user.TenantID = target.ID

	if err := d.DB.Model(&user).Update("tenant_id", target.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update user tenant", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	token, err := security.MakeAuthToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
