package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vario/internal/adapters/fs"
	"go.trai.ch/vario/internal/core/domain"
)

func TestWriter_Write(t *testing.T) {
	t.Run("Artifact and map", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "bin", "bundle.js")
		w := fs.NewWriter()

		err := w.Write(context.Background(), out, strings.NewReader("var a=1;"), []byte(`{"version":3}`))
		require.NoError(t, err)

		code, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "var a=1;", string(code))

		sm, err := os.ReadFile(out + ".map")
		require.NoError(t, err)
		assert.JSONEq(t, `{"version":3}`, string(sm))

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
	})

	t.Run("No map", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "bundle.js")
		require.NoError(t, fs.NewWriter().Write(context.Background(), out, strings.NewReader("x"), nil))

		_, err := os.Stat(out + ".map")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Overwrites previous artifact", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "bundle.js")
		require.NoError(t, os.WriteFile(out, []byte("old"), domain.FilePerm))

		require.NoError(t, fs.NewWriter().Write(context.Background(), out, strings.NewReader("new"), nil))

		code, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "new", string(code))
	})

	t.Run("Failed artifact removes map", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "bundle.js")

		err := fs.NewWriter().Write(context.Background(), out, iotest.ErrReader(errors.New("boom")), []byte("{}"))
		require.ErrorIs(t, err, domain.ErrWrite)

		_, statErr := os.Stat(out + ".map")
		assert.True(t, os.IsNotExist(statErr))
		_, statErr = os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "temp files must be cleaned up")
	})

	t.Run("Output directory is a file", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "bin")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), domain.FilePerm))

		err := fs.NewWriter().Write(context.Background(), filepath.Join(blocker, "bundle.js"), strings.NewReader("x"), nil)
		require.ErrorIs(t, err, domain.ErrWrite)
	})
}
