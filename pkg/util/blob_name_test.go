package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlobPrefix(t *testing.T) {
	p := BlobPrefix("user1")

	assert.True(t, strings.HasSuffix(p, "-user1-"))

	// The leading part is the upload timestamp in milliseconds
	ts := strings.SplitN(p, "-", 2)[0]
	assert.Greater(t, len(ts), 12)
}

func TestBlobName(t *testing.T) {
	n := BlobName("user1", "My Clip.mov", ".mp4")

	assert.True(t, strings.HasSuffix(n, "-user1-My_Clip.mp4"))
}

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, "clip.mp4", NormalizeExt("clip.mov", ".mp4"))
	assert.Equal(t, "clip.mp4", NormalizeExt("clip", ".mp4"))
	assert.Equal(t, "report.pdf", NormalizeExt("report.pdf", ""))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "clip.mov", SanitizeFileName("clip.mov"))
	assert.Equal(t, "my_clip.mov", SanitizeFileName("my clip.mov"))

	// Path traversal attempts collapse to the base name
	assert.Equal(t, "passwd", SanitizeFileName("../../etc/passwd"))
	assert.Equal(t, "evil.exe", SanitizeFileName(`C:\Users\evil.exe`))
}
