// Package fs implements the file system adapters: artifact writer, module resolver and hasher.
package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactWriter = (*Writer)(nil)

// Writer persists artifacts through a temp file and rename so readers never
// observe a half-written file at the output path.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write stores the map first and the artifact last. If the artifact cannot be
// written the map from this call is removed again.
func (w *Writer) Write(_ context.Context, outputPath string, artifact io.Reader, sourceMap []byte) (err error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return writeError(err, "failed to create output directory", dir)
	}

	if sourceMap != nil {
		mapPath := domain.MapPath(outputPath)
		if err := writeAtomic(mapPath, bytes.NewReader(sourceMap)); err != nil {
			return writeError(err, "failed to write source map", mapPath)
		}
		defer func() {
			if err != nil {
				_ = os.Remove(mapPath)
			}
		}()
	}

	if err := writeAtomic(outputPath, artifact); err != nil {
		return writeError(err, "failed to write artifact", outputPath)
	}
	return nil
}

func writeAtomic(path string, r io.Reader) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeError(err error, msg, path string) error {
	return errors.Join(domain.ErrWrite, zerr.With(zerr.Wrap(err, msg), "path", path))
}
