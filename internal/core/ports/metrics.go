package ports

import (
	"time"

	"go.trai.ch/vario/internal/core/domain"
)

// Metrics records build statistics.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveBuild records the outcome of one build.
	ObserveBuild(variant domain.VariantName, duration time.Duration, size *domain.SizeReport, err error)
	// WriteTextfile dumps the collected metrics in the Prometheus text format.
	WriteTextfile(path string) error
}
