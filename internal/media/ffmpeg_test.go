package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProbeOutput = `{
	"streams": [
		{
			"codec_name": "aac",
			"codec_type": "audio"
		},
		{
			"codec_name": "h264",
			"codec_type": "video",
			"width": 1280,
			"height": 720,
			"r_frame_rate": "30000/1001"
		}
	],
	"format": {
		"format_name": "mov,mp4,m4a,3gp,3g2,mj2",
		"duration": "42.516667",
		"bit_rate": "1205959"
	}
}`

func TestParseProbeOutput(t *testing.T) {
	meta, err := parseProbeOutput([]byte(sampleProbeOutput))
	require.NoError(t, err)

	assert.InDelta(t, 42.516667, meta.Duration, 1e-6)
	assert.Equal(t, 1280, meta.Width)
	assert.Equal(t, 720, meta.Height)
	assert.Equal(t, "30000/1001", meta.FrameRate)
	assert.Equal(t, "h264", meta.Codec)
	assert.EqualValues(t, 1205959, meta.BitRate)
	assert.Equal(t, "mov,mp4,m4a,3gp,3g2,mj2", meta.FormatName)
}

func TestParseProbeOutputPicksVideoStream(t *testing.T) {
	// The audio stream comes first in the sample, the video stream
	// must still win
	meta, err := parseProbeOutput([]byte(sampleProbeOutput))
	require.NoError(t, err)
	assert.NotEqual(t, "aac", meta.Codec)
}

func TestParseProbeOutputMalformed(t *testing.T) {
	_, err := parseProbeOutput([]byte("not json"))
	assert.Error(t, err)

	_, err = parseProbeOutput([]byte(`{"format": {"duration": "abc"}}`))
	assert.Error(t, err)
}

func TestParseProbeOutputEmpty(t *testing.T) {
	meta, err := parseProbeOutput([]byte(`{}`))
	require.NoError(t, err)

	assert.Zero(t, meta.Duration)
	assert.Zero(t, meta.Width)
	assert.Empty(t, meta.Codec)
}
