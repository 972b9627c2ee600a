// Package model defines database models
package model

type Tenant struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt int64  `gorm:"not null" json:"created_at"`

	Users  []User  `gorm:"foreignKey:TenantID" json:"-"`
	Files  []File  `gorm:"foreignKey:TenantID" json:"-"`
	Videos []Video `gorm:"foreignKey:TenantID" json:"-"`
}
