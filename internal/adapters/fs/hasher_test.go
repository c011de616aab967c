package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vario/internal/adapters/fs"
	"go.trai.ch/vario/internal/core/domain"
)

func TestHasher_HashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.js")
	b := filepath.Join(dir, "b.js")
	require.NoError(t, os.WriteFile(a, []byte("var a=1;"), domain.FilePerm))
	require.NoError(t, os.WriteFile(b, []byte("var a=1;"), domain.FilePerm))

	h := fs.NewHasher()
	ha, err := h.HashFile(a)
	require.NoError(t, err)
	hb, err := h.HashFile(b)
	require.NoError(t, err)

	assert.Len(t, ha, 16)
	assert.Equal(t, ha, hb, "same content must hash the same")

	require.NoError(t, os.WriteFile(b, []byte("var a=2;"), domain.FilePerm))
	hb, err = h.HashFile(b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestHasher_MissingFile(t *testing.T) {
	_, err := fs.NewHasher().HashFile(filepath.Join(t.TempDir(), "missing.js"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrFileHashFailed.Error())
}
