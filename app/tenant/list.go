package tenant

import (
	"net/http"

	"mediakeep/media-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type tenantRow struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	UserCount int64  `json:"user_count"`
}

// TenantList returns every tenant with its member count. Responses
// are cached by the router, the list changes rarely
func TenantList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var rows []tenantRow

	err := d.DB.
		Table("tenants").
		Select("tenants.id, tenants.name, count(users.id) as user_count").
		Joins("LEFT JOIN users ON users.tenant_id = tenants.id").
		Group("tenants.id, tenants.name").
		Order("tenants.id").
		Scan(&rows).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list tenants", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, rows)
}
