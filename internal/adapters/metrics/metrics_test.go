package metrics_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vario/internal/adapters/metrics"
	"go.trai.ch/vario/internal/core/domain"
)

func TestRecorder_ObserveBuild(t *testing.T) {
	r := metrics.New()

	report := domain.NewSizeReport(1000, 250)
	r.ObserveBuild(domain.VariantFullDev, 120*time.Millisecond, &report, nil)
	r.ObserveBuild(domain.VariantFullDev, 80*time.Millisecond, nil, errors.New("boom"))
	r.ObserveBuild(domain.VariantBridge, 50*time.Millisecond, nil, nil)

	expected := `
# HELP vario_builds_total Total number of builds by variant and outcome
# TYPE vario_builds_total counter
vario_builds_total{status="failure",variant="full-dev"} 1
vario_builds_total{status="success",variant="bridge"} 1
vario_builds_total{status="success",variant="full-dev"} 1
# HELP vario_artifact_bytes Size of the last artifact by variant, raw and gzip-compressed
# TYPE vario_artifact_bytes gauge
vario_artifact_bytes{kind="gzip",variant="full-dev"} 250
vario_artifact_bytes{kind="raw",variant="full-dev"} 1000
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected),
		"vario_builds_total", "vario_artifact_bytes"))

	count, err := testutil.GatherAndCount(r.Registry(), "vario_build_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := metrics.New()
	r.ObserveBuild(domain.VariantFullMin, time.Second, nil, nil)

	path := filepath.Join(t.TempDir(), "vario.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `vario_builds_total{status="success",variant="full-min"} 1`)
}

func TestRecorder_WriteTextfileFails(t *testing.T) {
	r := metrics.New()
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "vario.prom"))
	require.ErrorIs(t, err, domain.ErrMetricsWriteFailed)
}
