// Package service contains the upload ingestion pipeline
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mediakeep/media-api/internal/media"
	"mediakeep/media-api/internal/model"
	"mediakeep/media-api/internal/storage"
	"mediakeep/media-api/pkg/util"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	publicIDCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
	publicIDLength  = 16

	imageQuality = 80
)

// Stage errors. Everything the pipeline returns wraps one of these so
// callers can classify a failure without reading its message
var (
	ErrTransform   = errors.New("media transform failed")
	ErrStorage     = errors.New("object storage failed")
	ErrPersistence = errors.New("database write failed")
)

// UploadRequest carries one validated upload into the pipeline,
// decoupled from whatever HTTP framework produced it
type UploadRequest struct {
	TempPath     string
	OriginalName string
	MimeType     string
	Size         int64
	UploaderID   string
	TenantID     uint
	Visibility   string
}

// UploadResult holds the single record a successful run produced.
// Exactly one of File and Video is set
type UploadResult struct {
	File  *model.File  `json:"file,omitempty"`
	Video *model.Video `json:"video,omitempty"`
}

type Uploader struct {
	DB    *gorm.DB
	Store storage.ObjectStore
	Media media.Processor
}

func NewUploader(db *gorm.DB, store storage.ObjectStore, m media.Processor) *Uploader {
	return &Uploader{
		DB:    db,
		Store: store,
		Media: m,
	}
}

// Do runs the full ingestion lifecycle for one upload: audit row,
// classification, transform, storage, record persistence. On any
// failure no File/Video record survives, already-stored blobs are
// deleted again and the audit row ends up failed. Temp files never
// outlive the call, success or not
func (u *Uploader) Do(ctx context.Context, req *UploadRequest) (*UploadResult, error) {
	if req.Visibility == "" {
		req.Visibility = model.VisibilityPublic
	}

	// The audit row goes in before any transformation so every
	// attempt is traceable even if classification never runs
	blob := &model.Blob{
		UserID:    req.UploaderID,
		TempPath:  req.TempPath,
		Status:    model.StateUploading,
		CreatedAt: time.Now().Unix(),
	}
	if err := u.DB.Create(blob).Error; err != nil {
		os.Remove(req.TempPath)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	run := &pipelineRun{temps: []string{req.TempPath}}
	defer run.cleanup()

	var (
		res *UploadResult
		err error
	)

	switch {
	case strings.HasPrefix(req.MimeType, "video/"):
		res, err = u.ingestVideo(ctx, req, run)
	case strings.HasPrefix(req.MimeType, "image/"):
		res, err = u.ingestImage(ctx, req, run)
	default:
		res, err = u.ingestRaw(ctx, req, run)
	}

	if err != nil {
		run.rollback(u.Store)
		u.finalizeBlob(blob.ID, model.StateFailed)
		return nil, err
	}

	u.finalizeBlob(blob.ID, model.StateReady)
	return res, nil
}

// pipelineRun tracks what one upload created so both temp files and
// already-stored blobs can be undone
type pipelineRun struct {
	temps    []string
	uploaded []string
}

func (r *pipelineRun) addTemp(p string) {
	r.temps = append(r.temps, p)
}

func (r *pipelineRun) cleanup() {
	for _, p := range r.temps {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			zap.L().Warn("Failed to remove temp file", zap.String("path", p), zap.Error(err))
		}
	}
}

func (r *pipelineRun) rollback(store storage.ObjectStore) {
	for _, name := range r.uploaded {
		if err := store.Delete(context.Background(), name); err != nil {
			zap.L().Error("Failed to clean up after failed upload", zap.String("name", name), zap.Error(err))
		} else {
			zap.L().Debug("Cleaned up after failed upload", zap.String("name", name))
		}
	}
}

func (u *Uploader) ingestVideo(ctx context.Context, req *UploadRequest, run *pipelineRun) (*UploadResult, error) {
	transcoded, err := u.Media.TranscodeVideo(ctx, req.TempPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}
	run.addTemp(transcoded)

	thumb, err := u.Media.ExtractThumbnail(ctx, transcoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}
	run.addTemp(thumb)

	meta, err := u.Media.ProbeVideo(ctx, transcoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}

	// One prefix for both blobs so they stay recognizable as a pair
	prefix := util.BlobPrefix(req.UploaderID)
	blobName := prefix + util.NormalizeExt(req.OriginalName, ".mp4")
	thumbName := prefix + util.NormalizeExt(req.OriginalName, ".jpg")

	url, size, err := u.putFile(ctx, blobName, transcoded, "video/mp4", run)
	if err != nil {
		return nil, err
	}

	thumbURL, _, err := u.putFile(ctx, thumbName, thumb, "image/jpeg", run)
	if err != nil {
		return nil, err
	}

	publicID, err := newPublicID()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	video := &model.Video{
		PublicID:   publicID,
		TenantID:   req.TenantID,
		Title:      req.OriginalName,
		Type:       req.MimeType,
		BlobName:   blobName,
		ThumbName:  thumbName,
		URL:        url,
		ThumbURL:   thumbURL,
		Size:       size,
		Visibility: req.Visibility,
		Status:     model.StateReady,
		Duration:   meta.Duration,
		Width:      meta.Width,
		Height:     meta.Height,
		FrameRate:  meta.FrameRate,
		Codec:      meta.Codec,
		BitRate:    meta.BitRate,
		FormatName: meta.FormatName,
		CreatedAt:  time.Now().Unix(),
	}

	err = u.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(video).Error; err != nil {
			return err
		}

		return tx.Create(videoMetaRows(video.ID, meta)).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return &UploadResult{Video: video}, nil
}

func (u *Uploader) ingestImage(ctx context.Context, req *UploadRequest, run *pipelineRun) (*UploadResult, error) {
	compressed, err := u.Media.CompressImage(req.TempPath, imageQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}
	run.addTemp(compressed)

	meta, err := u.Media.ProbeImage(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}

	blobName := util.BlobName(req.UploaderID, req.OriginalName, ".jpg")

	url, size, err := u.putFile(ctx, blobName, compressed, "image/jpeg", run)
	if err != nil {
		return nil, err
	}

	publicID, err := newPublicID()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	file := &model.File{
		PublicID:     publicID,
		TenantID:     req.TenantID,
		OriginalName: req.OriginalName,
		BlobName:     blobName,
		Type:         req.MimeType,
		Size:         size,
		Visibility:   req.Visibility,
		URL:          url,
		Status:       model.StateReady,
		CreatedAt:    time.Now().Unix(),
	}

	err = u.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(file).Error; err != nil {
			return err
		}

		return tx.Create(imageMetaRows(file.ID, meta)).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return &UploadResult{File: file}, nil
}

// ingestRaw stores anything that's neither video nor image unmodified
// and persists no derived metadata
func (u *Uploader) ingestRaw(ctx context.Context, req *UploadRequest, run *pipelineRun) (*UploadResult, error) {
	blobName := util.BlobName(req.UploaderID, req.OriginalName, "")

	url, size, err := u.putFile(ctx, blobName, req.TempPath, req.MimeType, run)
	if err != nil {
		return nil, err
	}

	publicID, err := newPublicID()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	file := &model.File{
		PublicID:     publicID,
		TenantID:     req.TenantID,
		OriginalName: req.OriginalName,
		BlobName:     blobName,
		Type:         req.MimeType,
		Size:         size,
		Visibility:   req.Visibility,
		URL:          url,
		Status:       model.StateReady,
		CreatedAt:    time.Now().Unix(),
	}

	if err := u.DB.Create(file).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return &UploadResult{File: file}, nil
}

func (u *Uploader) putFile(ctx context.Context, name, p, contentType string, run *pipelineRun) (string, int64, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	url, err := u.Store.Put(ctx, name, f, stat.Size(), contentType)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	run.uploaded = append(run.uploaded, name)
	return url, stat.Size(), nil
}

func (u *Uploader) finalizeBlob(id uint, status string) {
	err := u.DB.
		Model(model.Blob{}).
		Where("id = ?", id).
		Update("status", status).
		Error
	if err != nil {
		zap.L().Error("Failed to finalize blob record", zap.Uint("id", id), zap.Error(err))
	}
}

func newPublicID() (string, error) {
	return gonanoid.Generate(publicIDCharset, publicIDLength)
}

func videoMetaRows(videoID uint, m *media.VideoMeta) []model.Metadata {
	id := videoID
	return []model.Metadata{
		{VideoID: &id, Key: "duration", Value: strconv.FormatFloat(m.Duration, 'f', -1, 64)},
		{VideoID: &id, Key: "width", Value: strconv.Itoa(m.Width)},
		{VideoID: &id, Key: "height", Value: strconv.Itoa(m.Height)},
		{VideoID: &id, Key: "frame_rate", Value: m.FrameRate},
		{VideoID: &id, Key: "codec", Value: m.Codec},
		{VideoID: &id, Key: "bit_rate", Value: strconv.FormatInt(m.BitRate, 10)},
		{VideoID: &id, Key: "format_name", Value: m.FormatName},
	}
}

func imageMetaRows(fileID uint, m *media.ImageMeta) []model.Metadata {
	id := fileID
	return []model.Metadata{
		{FileID: &id, Key: "width", Value: strconv.Itoa(m.Width)},
		{FileID: &id, Key: "height", Value: strconv.Itoa(m.Height)},
		{FileID: &id, Key: "format", Value: m.Format},
		{FileID: &id, Key: "color_space", Value: m.ColorSpace},
		{FileID: &id, Key: "channels", Value: strconv.Itoa(m.Channels)},
		{FileID: &id, Key: "has_alpha", Value: strconv.FormatBool(m.HasAlpha)},
		{FileID: &id, Key: "orientation", Value: strconv.Itoa(m.Orientation)},
	}
}
