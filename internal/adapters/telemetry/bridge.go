package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge is a span processor that turns build and stage spans into renderer
// events. Build attributes recorded by the pipeline travel with the
// completion event.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart announces the span. Stage spans carry their build span as parent.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	spanID, ok := b.spanID(s)
	if !ok {
		return
	}

	var parentID string
	if sc := trace.SpanContextFromContext(parent); sc.IsValid() {
		parentID = sc.SpanID().String()
	}
	b.renderer.OnTaskStart(spanID, parentID, s.Name(), s.StartTime())
}

// OnEnd reports the span outcome.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	spanID, ok := b.spanID(s)
	if !ok {
		return
	}
	b.renderer.OnTaskComplete(spanID, s.EndTime(), outcome(s))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func (b *Bridge) spanID(s sdktrace.ReadOnlySpan) (string, bool) {
	if b.renderer == nil {
		return "", false
	}
	sc := s.SpanContext()
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

func outcome(s sdktrace.ReadOnlySpan) domain.SpanOutcome {
	var out domain.SpanOutcome
	if status := s.Status(); status.Code == codes.Error {
		desc := status.Description
		if desc == "" {
			desc = "stage " + s.Name() + " failed"
		}
		out.Err = errors.New(desc)
	}

	var (
		raw, compressed int64
		sized           bool
	)
	for _, kv := range s.Attributes() {
		switch kv.Key {
		case attribute.Key(domain.AttrVariant):
			out.Variant = domain.VariantName(kv.Value.AsString())
		case attribute.Key(domain.AttrDigest):
			out.Digest = kv.Value.AsString()
		case attribute.Key(domain.AttrSizeRaw):
			raw, sized = kv.Value.AsInt64(), true
		case attribute.Key(domain.AttrSizeCompressed):
			compressed = kv.Value.AsInt64()
		}
	}
	if sized {
		report := domain.NewSizeReport(raw, compressed)
		out.Size = &report
	}
	return out
}
