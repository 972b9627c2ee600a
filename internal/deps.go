package internal

import (
	"mediakeep/media-api/internal/media"
	"mediakeep/media-api/internal/service"
	"mediakeep/media-api/internal/storage"
	"mediakeep/media-api/pkg/security"

	"gorm.io/gorm"
)

// Deps holds every client the handlers need. Constructed once by the
// router, never reached for through globals
type Deps struct {
	DB       *gorm.DB
	Argon    *security.ArgonHash
	Store    storage.ObjectStore
	Media    media.Processor
	Uploader *service.Uploader
}
