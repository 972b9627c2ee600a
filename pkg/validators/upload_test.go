package validators

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func makeFileHeader(t *testing.T, name, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}

	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

func TestUploadValidator(t *testing.T) {
	viper.Set("upload.max_size", int64(1<<20))

	fh := makeFileHeader(t, "pic.png", "image/png", pngBytes)

	code, mime, err := UploadValidator(fh, "public")
	require.NoError(t, err)
	assert.Zero(t, code)
	assert.Equal(t, "image/png", mime)
}

func TestUploadValidatorNoFile(t *testing.T) {
	code, _, err := UploadValidator(nil, "")
	assert.ErrorIs(t, err, ErrNoFile)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUploadValidatorNameTooLong(t *testing.T) {
	viper.Set("upload.max_size", int64(1<<20))

	fh := makeFileHeader(t, strings.Repeat("a", 300)+".png", "image/png", pngBytes)

	code, _, err := UploadValidator(fh, "")
	assert.ErrorIs(t, err, ErrFileNameTooLong)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUploadValidatorTooLarge(t *testing.T) {
	viper.Set("upload.max_size", int64(8))

	fh := makeFileHeader(t, "pic.png", "image/png", pngBytes)

	// Oversized uploads must fail before any processing starts
	code, _, err := UploadValidator(fh, "")
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
}

func TestUploadValidatorBadVisibility(t *testing.T) {
	viper.Set("upload.max_size", int64(1<<20))

	fh := makeFileHeader(t, "pic.png", "image/png", pngBytes)

	code, _, err := UploadValidator(fh, "hidden")
	assert.ErrorIs(t, err, ErrBadVisibility)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUploadValidatorSpoofedContentType(t *testing.T) {
	viper.Set("upload.max_size", int64(1<<20))

	// Declared as video, actually a PNG. The sniffed type must win
	fh := makeFileHeader(t, "movie.mp4", "video/mp4", pngBytes)

	_, mime, err := UploadValidator(fh, "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}

func TestUploadValidatorDeclaredWinsWithinType(t *testing.T) {
	viper.Set("upload.max_size", int64(1<<20))

	// Same top-level type, the more specific declared value stays
	fh := makeFileHeader(t, "pic.jpg", "image/jpeg", pngBytes)

	_, mime, err := UploadValidator(fh, "")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
}

func TestUploadValidatorNoDeclaredType(t *testing.T) {
	viper.Set("upload.max_size", int64(1<<20))

	fh := makeFileHeader(t, "pic.png", "", pngBytes)

	_, mime, err := UploadValidator(fh, "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}
