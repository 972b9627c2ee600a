// Package media contains the transform side of the upload pipeline:
// transcoding and thumbnailing through external ffmpeg binaries and
// image recompression in-process
package media

import "context"

// VideoMeta is the technical metadata probed from a transcoded video
type VideoMeta struct {
	Duration   float64 `json:"duration"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FrameRate  string  `json:"frame_rate"`
	Codec      string  `json:"codec"`
	BitRate    int64   `json:"bit_rate"`
	FormatName string  `json:"format_name"`
}

// ImageMeta is the technical metadata read from a compressed image
type ImageMeta struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	ColorSpace  string `json:"color_space"`
	Channels    int    `json:"channels"`
	HasAlpha    bool   `json:"has_alpha"`
	Orientation int    `json:"orientation"`
}

// Processor produces derivatives and metadata from local temp files.
// Every returned path is a new temp file the caller must clean up
type Processor interface {
	TranscodeVideo(ctx context.Context, src string) (string, error)
	ExtractThumbnail(ctx context.Context, videoPath string) (string, error)
	ProbeVideo(ctx context.Context, path string) (*VideoMeta, error)
	CompressImage(src string, quality int) (string, error)
	ProbeImage(path string) (*ImageMeta, error)
}
