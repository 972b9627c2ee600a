package model

// Blob tracks the lifecycle of one upload attempt independent of the
// File or Video record it may produce. Rows are never deleted, they
// serve as an audit trail
type Blob struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string `gorm:"index;not null" json:"user_id"`
	TempPath  string `json:"temp_path"`
	Status    string `json:"status"`
	CreatedAt int64  `gorm:"not null" json:"created_at"`
}
