package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/vario/internal/core/domain"
)

func TestCompressionRatio(t *testing.T) {
	tests := []struct {
		name       string
		raw        int64
		compressed int64
		want       float64
	}{
		{"half", 200, 100, 50},
		{"rounds to two decimals", 3, 1, 33.33},
		{"rounds up", 3, 2, 66.67},
		{"empty artifact", 0, 20, 0},
		{"incompressible", 10, 30, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, domain.CompressionRatio(tt.raw, tt.compressed), 1e-9)
		})
	}
}

func TestNewSizeReport(t *testing.T) {
	r := domain.NewSizeReport(1000, 250)
	assert.Equal(t, int64(1000), r.Raw)
	assert.Equal(t, int64(250), r.Compressed)
	assert.InDelta(t, 25.0, r.Ratio, 1e-9)
}
