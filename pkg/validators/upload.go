package validators

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"mediakeep/media-api/internal/model"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrNoFile          = errors.New("no file provided")
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileNameTooLong = errors.New("file name is too long")
	ErrBadVisibility   = errors.New("visibility must be either public or private")
)

const maxFileNameSize = 245

// UploadValidator rejects an upload before any processing starts and
// returns the MIME type classification should trust. The declared
// Content-Type header is easy to spoof, so the actual bytes get
// sniffed and win on disagreement
func UploadValidator(fh *multipart.FileHeader, visibility string) (int, string, error) {
	if fh == nil {
		return http.StatusBadRequest, "", ErrNoFile
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, "", ErrFileNameTooLong
	}

	if fh.Size > viper.GetInt64("upload.max_size") {
		return http.StatusRequestEntityTooLarge, "", ErrFileTooLarge
	}

	if visibility != "" &&
		visibility != model.VisibilityPublic &&
		visibility != model.VisibilityPrivate {
		return http.StatusBadRequest, "", ErrBadVisibility
	}

	declared := fh.Header.Get("Content-Type")

	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, "", err
	}
	defer f.Close()

	sniffed, err := mimetype.DetectReader(f)
	if err != nil {
		return http.StatusInternalServerError, "", err
	}

	if declared == "" || topLevel(declared) != topLevel(sniffed.String()) {
		declared = sniffed.String()
	}

	return 0, declared, nil
}

func topLevel(mime string) string {
	t, _, found := strings.Cut(mime, "/")
	if !found {
		return ""
	}
	return t
}
