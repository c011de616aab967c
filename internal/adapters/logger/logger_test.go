package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vario/internal/adapters/logger"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing to a buffer with colours disabled.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Golden(t *testing.T) {
	tests := []struct {
		name string
		log  func(*logger.Logger)
	}{
		{
			name: "info_basic",
			log:  func(l *logger.Logger) { l.Info("built 5 target(s)") },
		},
		{
			name: "info_multiline",
			log:  func(l *logger.Logger) { l.Info("line1\nline2") },
		},
		{
			name: "warn_basic",
			log: func(l *logger.Logger) {
				l.Warn("size report unavailable for out/bundle.js")
			},
		},
		{
			name: "error_chain",
			log: func(l *logger.Logger) {
				err := zerr.With(
					zerr.Wrap(errors.New("open out/bundle.js: permission denied"), "failed to create temp file"),
					"path", "out/bundle.js",
				)
				l.Error(err)
			},
		},
		{
			name: "error_joined",
			log: func(l *logger.Logger) {
				l.Error(errors.Join(domain.ErrBuildExecutionFailed, zerr.Wrap(domain.ErrWrite, "disk full")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("hello")
	lg.Error(zerr.Wrap(domain.ErrTransform, "minify failed"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "hello", info["msg"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "minify failed: failed to transform bundle", failure["error"])
}

func TestLogger_SetJSONKeepsOutput(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.SetJSON(false)

	lg.Info("back to pretty")
	assert.Equal(t, "back to pretty\n", buf.String())
}
