package uploads

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/framer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("video"), 0644))
}

func TestLocator_Locate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	touch(t, dir, "3f2a.mp4")
	touch(t, dir, "9b1c.mov")
	touch(t, dir, "abc.mp4")
	touch(t, dir, "c0de")
	touch(t, dir, "c0de.mp4")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "77dd"), 0755))

	loc := NewLocator(dir)

	t.Run("matches by extension", func(t *testing.T) {
		path, err := loc.Locate(ctx, "3f2a")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "3f2a.mp4"), path)
	})

	t.Run("exact file name", func(t *testing.T) {
		path, err := loc.Locate(ctx, "9b1c.mov")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "9b1c.mov"), path)
	})

	t.Run("a shorter id does not match a longer one", func(t *testing.T) {
		_, err := loc.Locate(ctx, "ab")
		assert.ErrorIs(t, err, domain.ErrInputNotFound)

		_, err = loc.Locate(ctx, "3f")
		assert.ErrorIs(t, err, domain.ErrInputNotFound)
	})

	t.Run("exact name wins over an extension match", func(t *testing.T) {
		path, err := loc.Locate(ctx, "c0de")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "c0de"), path)
	})

	t.Run("directories are ignored", func(t *testing.T) {
		_, err := loc.Locate(ctx, "77dd")
		assert.ErrorIs(t, err, domain.ErrInputNotFound)
	})

	t.Run("unknown ref", func(t *testing.T) {
		_, err := loc.Locate(ctx, "ffff")
		assert.ErrorIs(t, err, domain.ErrInputNotFound)
	})
}

func TestLocator_Locate_RejectsPaths(t *testing.T) {
	loc := NewLocator(t.TempDir())

	for _, ref := range []string{"", "../etc/passwd", "a/b", `a\b`, ".."} {
		t.Run(ref, func(t *testing.T) {
			_, err := loc.Locate(context.Background(), ref)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLocator_Locate_MissingDir(t *testing.T) {
	loc := NewLocator(filepath.Join(t.TempDir(), "absent"))

	_, err := loc.Locate(context.Background(), "3f2a")

	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}
