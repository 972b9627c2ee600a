package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mediakeep/media-api/internal/access"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	errNoToken      = errors.New("no authorization token provided")
	errTokenInvalid = errors.New("authorization token invalid")
	errTokenExpired = errors.New("authorization token expired")
)

// NewJWTMiddleware rejects requests without a valid bearer token and
// sets userID, tenantID and role for the handlers
func NewJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		if err := authenticate(c); err != nil {
			status := http.StatusUnauthorized
			if err == errNoToken {
				status = http.StatusBadRequest
			}

			c.AbortWithStatusJSON(status, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}

// NewOptionalJWTMiddleware sets the requester identity when a valid
// token is present and lets anonymous requests through untouched. The
// access gate decides what anonymous callers may see
func NewOptionalJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c); err != nil && err != errNoToken {
			zap.L().Debug("Ignoring invalid token on optional-auth endpoint", zap.Error(err))
		}

		c.Next()
	}
}

func authenticate(c *gin.Context) error {
	header := c.GetHeader("Authorization")
	if header == "" {
		return errNoToken
	}

	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return errTokenInvalid
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("jwt.secret")), nil
	})
	if err != nil || !token.Valid {
		return errTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errTokenInvalid
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return errTokenInvalid
	}

	// Numeric claims always come back as float64
	tenantID, ok := claims["tenant_id"].(float64)
	if !ok {
		return errTokenInvalid
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Now().Unix() >= int64(exp) {
		return errTokenExpired
	}

	role, _ := claims["role"].(string)

	c.Set("userID", userID)
	c.Set("tenantID", uint(tenantID))
	c.Set("role", role)

	return nil
}

// RequesterFrom returns the authenticated requester for the access
// gate, or nil when the request is anonymous
func RequesterFrom(c *gin.Context) *access.Requester {
	userID, ok := c.Get("userID")
	if !ok {
		return nil
	}

	tenantID, ok := c.Get("tenantID")
	if !ok {
		return nil
	}

	return &access.Requester{
		UserID:   userID.(string),
		TenantID: tenantID.(uint),
	}
}
