package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"mediakeep/media-api/internal/media"
	"mediakeep/media-api/internal/model"
	"mediakeep/media-api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeProcessor produces real temp files so the pipeline can open and
// store them, without ever shelling out
type fakeProcessor struct {
	dir string

	transcodeErr error
	thumbErr     error
	probeErr     error
	compressErr  error
}

func (f *fakeProcessor) writeTemp(t string, data string) (string, error) {
	p := filepath.Join(f.dir, t)
	return p, os.WriteFile(p, []byte(data), 0o600)
}

func (f *fakeProcessor) TranscodeVideo(_ context.Context, _ string) (string, error) {
	if f.transcodeErr != nil {
		return "", f.transcodeErr
	}
	return f.writeTemp("transcoded.mp4", "transcoded bytes")
}

func (f *fakeProcessor) ExtractThumbnail(_ context.Context, _ string) (string, error) {
	if f.thumbErr != nil {
		return "", f.thumbErr
	}
	return f.writeTemp("thumb.jpg", "thumb bytes")
}

func (f *fakeProcessor) ProbeVideo(_ context.Context, _ string) (*media.VideoMeta, error) {
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return &media.VideoMeta{
		Duration:   12.5,
		Width:      1920,
		Height:     1080,
		FrameRate:  "30/1",
		Codec:      "h264",
		BitRate:    4_000_000,
		FormatName: "mov,mp4,m4a,3gp,3g2,mj2",
	}, nil
}

func (f *fakeProcessor) CompressImage(_ string, _ int) (string, error) {
	if f.compressErr != nil {
		return "", f.compressErr
	}
	return f.writeTemp("compressed.jpg", "compressed bytes")
}

func (f *fakeProcessor) ProbeImage(_ string) (*media.ImageMeta, error) {
	return &media.ImageMeta{
		Width:       800,
		Height:      600,
		Format:      "jpeg",
		ColorSpace:  "srgb",
		Channels:    3,
		Orientation: 1,
	}, nil
}

// flakyStore fails every Put after the first failAfter calls
type flakyStore struct {
	*storage.MemoryStore
	failAfter int
	puts      int
}

func (s *flakyStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	s.puts++
	if s.puts > s.failAfter {
		return "", errors.New("put failed")
	}
	return s.MemoryStore.Put(ctx, name, r, size, contentType)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Tenant{},
		&model.User{},
		&model.File{},
		&model.Video{},
		&model.Metadata{},
		&model.Blob{},
	))

	return db
}

func writeUpload(t *testing.T, name string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("upload bytes"), 0o600))
	return p
}

func videoRequest(t *testing.T) *UploadRequest {
	return &UploadRequest{
		TempPath:     writeUpload(t, "clip.mov"),
		OriginalName: "clip.mov",
		MimeType:     "video/quicktime",
		Size:         12,
		UploaderID:   "user1",
		TenantID:     1,
		Visibility:   model.VisibilityPrivate,
	}
}

func TestUploadVideo(t *testing.T) {
	db := newTestDB(t)
	store := storage.NewMemoryStore()
	u := NewUploader(db, store, &fakeProcessor{dir: t.TempDir()})

	req := videoRequest(t)
	res, err := u.Do(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, res.Video)
	assert.Nil(t, res.File)

	assert.NotEmpty(t, res.Video.PublicID)
	assert.Equal(t, uint(1), res.Video.TenantID)
	assert.Equal(t, model.StateReady, res.Video.Status)
	assert.Equal(t, model.VisibilityPrivate, res.Video.Visibility)
	assert.Equal(t, 12.5, res.Video.Duration)
	assert.Equal(t, 1920, res.Video.Width)
	assert.Equal(t, "h264", res.Video.Codec)

	// Video and thumbnail share one prefix pair in storage
	assert.Equal(t, 2, store.Len())
	assert.True(t, store.Has(res.Video.BlobName))
	assert.True(t, store.Has(res.Video.ThumbName))

	var videos int64
	db.Model(model.Video{}).Count(&videos)
	assert.EqualValues(t, 1, videos)

	var metaRows int64
	db.Model(model.Metadata{}).Where("video_id = ?", 1).Count(&metaRows)
	assert.EqualValues(t, 7, metaRows)

	var blob model.Blob
	require.NoError(t, db.First(&blob).Error)
	assert.Equal(t, model.StateReady, blob.Status)

	// The original temp must not survive a successful run
	_, statErr := os.Stat(req.TempPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploadImage(t *testing.T) {
	db := newTestDB(t)
	store := storage.NewMemoryStore()
	u := NewUploader(db, store, &fakeProcessor{dir: t.TempDir()})

	res, err := u.Do(context.Background(), &UploadRequest{
		TempPath:     writeUpload(t, "photo.png"),
		OriginalName: "photo.png",
		MimeType:     "image/png",
		Size:         12,
		UploaderID:   "user1",
		TenantID:     2,
	})
	require.NoError(t, err)

	require.NotNil(t, res.File)
	assert.Nil(t, res.Video)

	// Empty visibility falls back to public
	assert.Equal(t, model.VisibilityPublic, res.File.Visibility)
	assert.Equal(t, model.StateReady, res.File.Status)

	// The blob name keeps the original base but carries the output
	// extension
	assert.Contains(t, res.File.BlobName, "photo.jpg")
	assert.Equal(t, 1, store.Len())

	var metaRows int64
	db.Model(model.Metadata{}).Where("file_id = ?", res.File.ID).Count(&metaRows)
	assert.EqualValues(t, 7, metaRows)
}

func TestUploadRaw(t *testing.T) {
	db := newTestDB(t)
	store := storage.NewMemoryStore()
	u := NewUploader(db, store, &fakeProcessor{dir: t.TempDir()})

	res, err := u.Do(context.Background(), &UploadRequest{
		TempPath:     writeUpload(t, "report.pdf"),
		OriginalName: "report.pdf",
		MimeType:     "application/pdf",
		Size:         12,
		UploaderID:   "user1",
		TenantID:     1,
	})
	require.NoError(t, err)

	require.NotNil(t, res.File)
	assert.Equal(t, "application/pdf", res.File.Type)
	assert.Contains(t, res.File.BlobName, "report.pdf")
	assert.Equal(t, 1, store.Len())

	// Raw uploads carry no extracted metadata
	var metaRows int64
	db.Model(model.Metadata{}).Count(&metaRows)
	assert.EqualValues(t, 0, metaRows)
}

func TestUploadTransformFailure(t *testing.T) {
	db := newTestDB(t)
	store := storage.NewMemoryStore()
	u := NewUploader(db, store, &fakeProcessor{
		dir:          t.TempDir(),
		transcodeErr: errors.New("boom"),
	})

	req := videoRequest(t)
	_, err := u.Do(context.Background(), req)
	require.ErrorIs(t, err, ErrTransform)

	var videos int64
	db.Model(model.Video{}).Count(&videos)
	assert.EqualValues(t, 0, videos)

	assert.Equal(t, 0, store.Len())

	var blob model.Blob
	require.NoError(t, db.First(&blob).Error)
	assert.Equal(t, model.StateFailed, blob.Status)

	_, statErr := os.Stat(req.TempPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploadStorageFailureRollsBack(t *testing.T) {
	db := newTestDB(t)
	store := &flakyStore{MemoryStore: storage.NewMemoryStore(), failAfter: 1}
	u := NewUploader(db, store, &fakeProcessor{dir: t.TempDir()})

	// The video blob goes in, the thumbnail put fails, so the video
	// blob must be deleted again
	_, err := u.Do(context.Background(), videoRequest(t))
	require.ErrorIs(t, err, ErrStorage)

	assert.Equal(t, 0, store.Len())

	var videos int64
	db.Model(model.Video{}).Count(&videos)
	assert.EqualValues(t, 0, videos)

	var blob model.Blob
	require.NoError(t, db.First(&blob).Error)
	assert.Equal(t, model.StateFailed, blob.Status)
}

func TestUploadPersistenceFailureRollsBack(t *testing.T) {
	db := newTestDB(t)
	store := storage.NewMemoryStore()
	u := NewUploader(db, store, &fakeProcessor{dir: t.TempDir()})

	// With the videos table gone the final insert cannot land, which
	// must undo the already-stored objects
	require.NoError(t, db.Migrator().DropTable(&model.Video{}))

	_, err := u.Do(context.Background(), videoRequest(t))
	require.ErrorIs(t, err, ErrPersistence)

	assert.Equal(t, 0, store.Len())

	var blob model.Blob
	require.NoError(t, db.First(&blob).Error)
	assert.Equal(t, model.StateFailed, blob.Status)
}

func TestUploadAuditRowFirstFailure(t *testing.T) {
	db := newTestDB(t)
	store := storage.NewMemoryStore()
	u := NewUploader(db, store, &fakeProcessor{dir: t.TempDir()})

	require.NoError(t, db.Migrator().DropTable(&model.Blob{}))

	req := videoRequest(t)
	_, err := u.Do(context.Background(), req)
	require.ErrorIs(t, err, ErrPersistence)

	// Nothing ran, but the temp file is still gone
	assert.Equal(t, 0, store.Len())
	_, statErr := os.Stat(req.TempPath)
	assert.True(t, os.IsNotExist(statErr))
}
