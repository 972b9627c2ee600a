package security

import (
	"time"

	"mediakeep/media-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// MakeAuthToken signs a token carrying the identity the access gate
// trusts verbatim once the middleware has verified the signature
func MakeAuthToken(u *model.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   u.ID,
		"role":      u.Role,
		"tenant_id": u.TenantID,
		"type":      "auth",
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(time.Hour * 24 * 7).Unix(),
	})

	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}
