package util

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// BlobPrefix builds the collision-avoiding prefix for stored blob
// names: {uploadTimestamp}-{uploaderId}-. The millisecond+uploader
// pair is the only defense against collisions, there is no dedicated
// collision check
func BlobPrefix(uploaderID string) string {
	return fmt.Sprintf("%d-%s-", time.Now().UnixMilli(), uploaderID)
}

// BlobName builds a full stored blob name from an original file name,
// optionally normalizing its extension to newExt
func BlobName(uploaderID, originalName, newExt string) string {
	return BlobPrefix(uploaderID) + NormalizeExt(originalName, newExt)
}

// NormalizeExt sanitizes a client-supplied file name and, when newExt
// is non-empty, swaps its extension for the output format's
func NormalizeExt(name, newExt string) string {
	name = SanitizeFileName(name)

	if newExt != "" {
		name = strings.TrimSuffix(name, path.Ext(name)) + newExt
	}

	return name
}

// SanitizeFileName strips anything that would break an object key
// out of a client-supplied file name
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
