package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage("http://localhost:8080/", t.TempDir())
	require.NoError(t, err)

	key := "vehicles/CAR01/abc.png"

	t.Run("Save and read", func(t *testing.T) {
		require.NoError(t, s.SaveFile(ctx, key, strings.NewReader("png-bytes")))

		exists, size, err := s.FileExists(ctx, key)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, int64(9), size)

		rc, err := s.ReadFile(ctx, key)
		require.NoError(t, err)
		defer rc.Close()
		data, _ := io.ReadAll(rc)
		assert.Equal(t, "png-bytes", string(data))
	})

	t.Run("Download URL", func(t *testing.T) {
		url, err := s.GenerateDownloadURL(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/v1/vehicles/CAR01/image", url)

		_, err = s.GenerateDownloadURL(ctx, "other/thing")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("Traversal stays inside images dir", func(t *testing.T) {
		require.NoError(t, s.SaveFile(ctx, "../../escape.txt", strings.NewReader("x")))
		exists, _, err := s.FileExists(ctx, "escape.txt")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.DeleteFile(ctx, key))
		exists, _, err := s.FileExists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, s.DeleteFile(ctx, key), "deleting twice is fine")
	})

	t.Run("Empty key", func(t *testing.T) {
		assert.ErrorIs(t, s.SaveFile(ctx, "", strings.NewReader("x")), ErrInvalidKey)
	})
}
