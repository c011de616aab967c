package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vario/internal/adapters/watcher"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
)

func TestWatcher_ReportsWrites(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "main.js")
	require.NoError(t, os.WriteFile(file, []byte("1"), domain.FilePerm))

	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, root))
	defer w.Stop() //nolint:errcheck // test cleanup

	got := make(chan ports.WatchEvent, 16)
	go func() {
		for ev := range w.Events() {
			got <- ev
		}
		close(got)
	}()

	require.NoError(t, os.WriteFile(file, []byte("2"), domain.FilePerm))

	select {
	case ev := <-got:
		assert.Equal(t, file, ev.Path)
		assert.Contains(t, []ports.WatchOp{ports.OpWrite, ports.OpCreate}, ev.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}
}

func TestWatcher_NewDirectories(t *testing.T) {
	root := t.TempDir()

	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, root))
	defer w.Stop() //nolint:errcheck // test cleanup

	got := make(chan ports.WatchEvent, 64)
	go func() {
		for ev := range w.Events() {
			got <- ev
		}
	}()

	sub := filepath.Join(root, "lib")
	require.NoError(t, os.Mkdir(sub, domain.DirPerm))

	nested := filepath.Join(sub, "util.js")
	deadline := time.After(5 * time.Second)
	// The directory is added asynchronously; keep touching the file until it is seen.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev := <-got:
			if ev.Path == nested {
				return
			}
		case <-ticker.C:
			require.NoError(t, os.WriteFile(nested, []byte("x"), domain.FilePerm))
		case <-deadline:
			t.Fatal("no event for file in new directory")
		}
	}
}

func TestWatcher_StartErrors(t *testing.T) {
	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)
	defer w.Stop() //nolint:errcheck // test cleanup

	err = w.Start(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, domain.ErrWatchFailed)

	file := filepath.Join(t.TempDir(), "file.js")
	require.NoError(t, os.WriteFile(file, nil, domain.FilePerm))
	err = w.Start(context.Background(), file)
	require.ErrorIs(t, err, domain.ErrWatchFailed)
}
