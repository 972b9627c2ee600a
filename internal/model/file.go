package model

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

const (
	StateUploading = "uploading"
	StateReady     = "ready"
	StateFailed    = "failed"
)

type File struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"-"`

	// The only identifier ever exposed in URLs. The numeric ID stays internal
	PublicID string `gorm:"uniqueIndex;not null" json:"public_id"`

	TenantID uint `gorm:"not null" json:"tenant_id"`

	// Original file name before turning it into a prefixed blob name
	OriginalName string `json:"name"`
	BlobName     string `json:"blob_name"`
	Type         string `json:"type"`
	Size         int64  `json:"size"`
	Visibility   string `gorm:"default:public" json:"visibility"`
	URL          string `json:"url"`
	Status       string `json:"status"`
	CreatedAt    int64  `gorm:"not null" json:"created_at"`
}
