package media

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	p := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, imaging.Save(img, p))
	return p
}

func TestCompressImage(t *testing.T) {
	tr := &Transformer{}

	src := writeTestPNG(t, 64, 48)
	dst, err := tr.CompressImage(src, 80)
	require.NoError(t, err)
	defer os.Remove(dst)

	assert.NotEqual(t, src, dst)

	out, err := imaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, 64, out.Bounds().Dx())
	assert.Equal(t, 48, out.Bounds().Dy())
}

func TestCompressImageBadInput(t *testing.T) {
	tr := &Transformer{}

	p := filepath.Join(t.TempDir(), "not-an-image.png")
	require.NoError(t, os.WriteFile(p, []byte("garbage"), 0o600))

	_, err := tr.CompressImage(p, 80)
	assert.Error(t, err)
}

func TestProbeImage(t *testing.T) {
	tr := &Transformer{}

	src := writeTestPNG(t, 64, 48)
	dst, err := tr.CompressImage(src, 80)
	require.NoError(t, err)
	defer os.Remove(dst)

	meta, err := tr.ProbeImage(dst)
	require.NoError(t, err)

	assert.Equal(t, 64, meta.Width)
	assert.Equal(t, 48, meta.Height)
	assert.Equal(t, "jpeg", meta.Format)
	assert.Equal(t, "srgb", meta.ColorSpace)
	assert.Equal(t, 3, meta.Channels)
	assert.False(t, meta.HasAlpha)
	assert.Equal(t, 1, meta.Orientation)
}
