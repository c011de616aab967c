package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/vario/internal/adapters/telemetry"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// captureOutcome stores the outcome the bridge hands to the renderer.
func captureOutcome(r *mocks.MockRenderer, out *domain.SpanOutcome) {
	r.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ string, _ time.Time, o domain.SpanOutcome) { *out = o }).
		Times(1)
}

func TestBridge_OnStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(mockRenderer)

	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "", "build", gomock.Any()).Times(1)

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "build")
	defer span.End()

	if rwSpan, ok := span.(sdktrace.ReadWriteSpan); ok {
		bridge.OnStart(ctx, rwSpan)
	}
}

func TestBridge_OnStartWithNilRenderer(_ *testing.T) {
	bridge := telemetry.NewBridge(nil)

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "build")
	defer span.End()

	if rwSpan, ok := span.(sdktrace.ReadWriteSpan); ok {
		bridge.OnStart(ctx, rwSpan)
	}
}

func TestBridge_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(mockRenderer)

	var out domain.SpanOutcome
	captureOutcome(mockRenderer, &out)

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "build")
	span.End()

	roSpan, ok := span.(sdktrace.ReadOnlySpan)
	require.True(t, ok)
	bridge.OnEnd(roSpan)

	assert.Equal(t, domain.SpanOutcome{}, out)
}

func TestBridge_OnEndCarriesBuildAttributes(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(mockRenderer)

	var out domain.SpanOutcome
	captureOutcome(mockRenderer, &out)

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "build full-dev")
	span.SetAttributes(
		attribute.String(domain.AttrVariant, "full-dev"),
		attribute.Int64(domain.AttrSizeRaw, 400),
		attribute.Int64(domain.AttrSizeCompressed, 100),
		attribute.String(domain.AttrDigest, "0123456789abcdef"),
	)
	span.End()

	roSpan, ok := span.(sdktrace.ReadOnlySpan)
	require.True(t, ok)
	bridge.OnEnd(roSpan)

	require.NoError(t, out.Err)
	assert.Equal(t, domain.VariantFullDev, out.Variant)
	assert.Equal(t, "0123456789abcdef", out.Digest)
	require.NotNil(t, out.Size)
	assert.Equal(t, domain.NewSizeReport(400, 100), *out.Size)
}

func TestBridge_OnEndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(mockRenderer)

	var out domain.SpanOutcome
	captureOutcome(mockRenderer, &out)

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "bundle")
	span.SetStatus(codes.Error, "")
	span.End()

	roSpan, ok := span.(sdktrace.ReadOnlySpan)
	require.True(t, ok)
	bridge.OnEnd(roSpan)

	require.EqualError(t, out.Err, "stage bundle failed")
	assert.Nil(t, out.Size)
}
