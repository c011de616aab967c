package ports

import (
	"io"

	"go.trai.ch/vario/internal/core/domain"
)

// SizeReporter creates meters that observe an artifact stream.
//
//go:generate mockgen -source=size.go -destination=mocks/mock_size.go -package=mocks
type SizeReporter interface {
	// Measure returns a fresh meter for one artifact.
	Measure() SizeMeter
}

// SizeMeter counts the bytes written to it, raw and compressed.
// Write never fails so a meter can sit behind an io.TeeReader.
type SizeMeter interface {
	io.Writer
	// Report finalizes the meter. It must only be called once the stream has ended.
	Report() (domain.SizeReport, error)
}
