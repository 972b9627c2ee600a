package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path"
	"strconv"
	"strings"
	"time"

	"mediakeep/media-api/pkg/util"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Transformer implements Processor with ffmpeg/ffprobe subprocesses
// for video and the imaging library for stills
type Transformer struct {
	queue      *JobQueue
	probePath  string
	jobTimeout time.Duration
}

func NewTransformer(q *JobQueue) *Transformer {
	timeout := viper.GetDuration("ffmpeg.timeout")
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	return &Transformer{
		queue:      q,
		probePath:  viper.GetString("ffmpeg.ffprobe_path"),
		jobTimeout: timeout,
	}
}

// TranscodeVideo normalizes any input container to mp4/h264. The
// output is a new temp file, the input is left untouched
func (t *Transformer) TranscodeVideo(ctx context.Context, src string) (string, error) {
	dst := path.Join(os.TempDir(), "transcoded-"+util.RandStr(10)+".mp4")

	err := t.runJob(ctx, []string{
		"-y",
		"-loglevel", "error",
		"-i", src,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "28",
		"-c:a", "aac",
		"-movflags", "+faststart",
		"-f", "mp4",
		dst,
	})
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to transcode video, %w", err)
	}

	return dst, nil
}

// ExtractThumbnail grabs the first frame of a transcoded video,
// already scaled down and recompressed
func (t *Transformer) ExtractThumbnail(ctx context.Context, videoPath string) (string, error) {
	dst := path.Join(os.TempDir(), "thumb-"+util.RandStr(10)+".jpg")

	err := t.runJob(ctx, []string{
		"-y",
		"-loglevel", "error",
		"-ss", "0",
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		"-vf", "scale=320:-2",
		dst,
	})
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to extract thumbnail, %w", err)
	}

	return dst, nil
}

func (t *Transformer) runJob(ctx context.Context, args []string) error {
	done := make(chan error, 1)

	jobCtx, cancel := context.WithTimeout(ctx, t.jobTimeout)
	defer cancel()

	err := t.queue.Enqueue(&Job{
		ID:   util.RandStr(5),
		Args: args,
		Ctx:  jobCtx,
		Done: done,
	})
	if err != nil {
		return err
	}

	return <-done
}

func (t *Transformer) ProbeVideo(ctx context.Context, p string) (*VideoMeta, error) {
	probeCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	zap.L().Debug("Running FFprobe", zap.String("path", p))

	cmd := exec.CommandContext(probeCtx, t.probePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		"-i", p,
	)

	var stdOut, stdErr bytes.Buffer
	cmd.Stdout = &stdOut
	cmd.Stderr = &stdErr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed, %w (%s)", err, stdErr.String())
	}

	return parseProbeOutput(stdOut.Bytes())
}

type probeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		BitRate    string `json:"bit_rate"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

func parseProbeOutput(raw []byte) (*VideoMeta, error) {
	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("malformed ffprobe output, %w", err)
	}

	meta := &VideoMeta{
		FormatName: out.Format.FormatName,
	}

	if out.Format.Duration != "" {
		d, err := strconv.ParseFloat(strings.TrimSpace(out.Format.Duration), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed duration, %w", err)
		}
		meta.Duration = d
	}

	if out.Format.BitRate != "" {
		// ffprobe reports bit_rate as a decimal string
		b, err := strconv.ParseInt(strings.TrimSpace(out.Format.BitRate), 10, 64)
		if err == nil {
			meta.BitRate = b
		}
	}

	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}

		meta.Codec = s.CodecName
		meta.Width = s.Width
		meta.Height = s.Height
		meta.FrameRate = s.RFrameRate
		break
	}

	return meta, nil
}
