package model

// Metadata is one extracted key/value pair. Exactly one of FileID
// and VideoID is set
type Metadata struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	FileID  *uint  `gorm:"index" json:"file_id,omitempty"`
	VideoID *uint  `gorm:"index" json:"video_id,omitempty"`
	Key     string `gorm:"not null" json:"key"`
	Value   string `json:"value"`
}
