package model

// Video carries its technical metadata as typed columns. The loose
// key/value rows in Metadata mirror them for the /metadata endpoint
type Video struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"-"`

	PublicID string `gorm:"uniqueIndex;not null" json:"public_id"`
	TenantID uint   `gorm:"not null" json:"tenant_id"`

	Title     string `json:"title"`
	Type      string `json:"type"`
	BlobName  string `json:"blob_name"`
	ThumbName string `json:"thumb_name"`
	URL       string `json:"url"`
	ThumbURL  string `json:"thumb_url"`
	Size      int64  `json:"size"`

	Visibility string `gorm:"default:public" json:"visibility"`
	Status     string `json:"status"`

	Duration   float64 `json:"duration"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FrameRate  string  `json:"frame_rate"`
	Codec      string  `json:"codec"`
	BitRate    int64   `json:"bit_rate"`
	FormatName string  `json:"format_name"`

	CreatedAt int64 `gorm:"not null" json:"created_at"`
}
