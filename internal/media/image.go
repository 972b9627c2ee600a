package media

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path"

	"mediakeep/media-api/pkg/util"

	"github.com/disintegration/imaging"
)

// CompressImage re-encodes any decodable image as JPEG at the given
// quality. EXIF orientation is baked into the pixels on the way in,
// so the derivative never needs an orientation tag
func (t *Transformer) CompressImage(src string, quality int) (string, error) {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image, %w", err)
	}

	dst := path.Join(os.TempDir(), "compressed-"+util.RandStr(10)+".jpg")

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create compressed file, %w", err)
	}
	defer f.Close()

	if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to encode image, %w", err)
	}

	return dst, nil
}

func (t *Transformer) ProbeImage(p string) (*ImageMeta, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open image, %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image config, %w", err)
	}

	meta := &ImageMeta{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		// Derivatives are orientation-normalized by CompressImage
		Orientation: 1,
	}

	switch cfg.ColorModel {
	case color.GrayModel, color.Gray16Model:
		meta.ColorSpace = "b-w"
		meta.Channels = 1
	case color.CMYKModel:
		meta.ColorSpace = "cmyk"
		meta.Channels = 4
	case color.YCbCrModel:
		meta.ColorSpace = "srgb"
		meta.Channels = 3
	default:
		meta.ColorSpace = "srgb"
		meta.Channels = 4
		meta.HasAlpha = true
	}

	return meta, nil
}
