// Package size measures artifacts as they stream to disk.
package size

import (
	"errors"
	"sync"

	"github.com/klauspost/compress/gzip"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.SizeReporter = (*Reporter)(nil)
	_ ports.SizeMeter    = (*Meter)(nil)
)

// Reporter hands out one Meter per artifact.
type Reporter struct {
	level int
}

// NewReporter creates a Reporter that compresses with the default gzip level.
func NewReporter() *Reporter {
	return &Reporter{level: gzip.DefaultCompression}
}

// Measure returns a fresh meter.
func (r *Reporter) Measure() ports.SizeMeter {
	m := &Meter{}
	zw, err := gzip.NewWriterLevel(&m.compressed, r.level)
	if err != nil {
		m.err = err
		return m
	}
	m.zw = zw
	return m
}

// counter is an io.Writer that only counts.
type counter struct {
	n int64
}

func (c *counter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

// Meter counts raw and gzip-compressed bytes. Write always accepts the whole
// chunk; the first compression error is kept and surfaces from Report.
type Meter struct {
	mu         sync.Mutex
	raw        int64
	compressed counter
	zw         *gzip.Writer
	err        error
	done       bool
}

// Write feeds p to both accumulators.
func (m *Meter) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.raw += int64(len(p))
	if m.err == nil && m.zw != nil {
		if _, err := m.zw.Write(p); err != nil {
			m.err = err
		}
	}
	return len(p), nil
}

// Report flushes the compressor and returns the sizes.
func (m *Meter) Report() (domain.SizeReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return domain.SizeReport{}, zerr.Wrap(domain.ErrReportComputation, "meter already reported")
	}
	m.done = true

	if m.err == nil && m.zw != nil {
		m.err = m.zw.Close()
	}
	if m.err != nil {
		return domain.SizeReport{}, errors.Join(
			domain.ErrReportComputation,
			zerr.With(zerr.Wrap(m.err, "gzip accounting failed"), "raw", m.raw),
		)
	}
	return domain.NewSizeReport(m.raw, m.compressed.n), nil
}
