package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	url, err := s.Put(ctx, "a/b.mp4", strings.NewReader("video bytes"), 11, "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "mem://a/b.mp4", url)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Has("a/b.mp4"))

	obj, err := s.Get(ctx, "a/b.mp4")
	require.NoError(t, err)
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "video bytes", string(data))
	assert.EqualValues(t, 11, obj.ContentLength)
	assert.Equal(t, "video/mp4", obj.ContentType)

	require.NoError(t, s.Delete(ctx, "a/b.mp4"))
	assert.Equal(t, 0, s.Len())

	_, err = s.Get(ctx, "a/b.mp4")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing blob is not an error
	assert.NoError(t, s.Delete(ctx, "missing"))
}
