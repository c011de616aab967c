package ports

import (
	"context"
	"time"

	"go.trai.ch/vario/internal/core/domain"
)

// Renderer turns span lifecycle events into operator-facing progress output.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error

	// Stop flushes buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called with the names of the builds about to run.
	OnPlanEmit(targets []string)

	// OnTaskStart is called when a build or one of its stages begins.
	// parentID is empty for a build and set to the build's span for a stage.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called when a build or stage emits output.
	// data may contain partial lines.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a build or stage finishes.
	OnTaskComplete(spanID string, endTime time.Time, outcome domain.SpanOutcome)
}

// Console prints the operator-facing build reports.
type Console interface {
	// PrintSize prints the size report line for an artifact to standard output.
	PrintSize(output string, report domain.SizeReport)
	// ReportError prints each located diagnostic of err as file:line:col: message.
	ReportError(err error)
}
