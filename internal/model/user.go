package model

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:User" json:"role"`
	TenantID     uint   `gorm:"not null" json:"tenant_id"`
	CreatedAt    int64  `gorm:"not null" json:"created_at"`
}
