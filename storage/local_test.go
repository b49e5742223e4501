package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yatube/config"

	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "/media/")
	require.NoError(t, err)

	require.NoError(t, s.Write(ctx, "posts/small.gif", strings.NewReader("GIF89a"), 6, "image/gif"))

	ok, err := s.Exists(ctx, "posts/small.gif")
	require.NoError(t, err)
	require.True(t, ok)

	rc, err := s.Read(ctx, "posts/small.gif")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	require.Equal(t, "GIF89a", string(data))

	require.Equal(t, "/media/posts/small.gif", s.URL("posts/small.gif"))

	require.NoError(t, s.Delete(ctx, "posts/small.gif"))
	ok, err = s.Exists(ctx, "posts/small.gif")
	require.NoError(t, err)
	require.False(t, ok)

	// повторное удаление не ошибка
	require.NoError(t, s.Delete(ctx, "posts/small.gif"))
}

func TestLocalStorageReadMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/media/")
	require.NoError(t, err)

	_, err = s.Read(context.Background(), "posts/none.gif")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageKeepsKeysInsideBase(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	base := filepath.Join(root, "media")
	s, err := NewLocalStorage(base, "/media/")
	require.NoError(t, err)

	require.NoError(t, s.Write(ctx, "../../escape.txt", strings.NewReader("x"), 1, ""))

	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(base, "escape.txt"))
	require.NoError(t, err)
}

func TestNewPicksBackend(t *testing.T) {
	s, err := New(context.Background(), config.MediaConfig{
		Backend: "local",
		Local:   config.LocalMediaConfig{BasePath: t.TempDir()},
	})
	require.NoError(t, err)
	require.IsType(t, &LocalStorage{}, s)

	_, err = New(context.Background(), config.MediaConfig{Backend: "ftp"})
	require.Error(t, err)

	_, err = New(context.Background(), config.MediaConfig{Backend: "s3"})
	require.ErrorContains(t, err, "bucket")
}
