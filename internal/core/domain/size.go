package domain

import "math"

// SizeReport holds the byte counts observed for one artifact.
type SizeReport struct {
	Raw        int64
	Compressed int64
	// Ratio is Compressed/Raw as a percentage rounded to two decimals.
	Ratio float64
}

// NewSizeReport derives the compression ratio from the two byte counts.
func NewSizeReport(raw, compressed int64) SizeReport {
	return SizeReport{
		Raw:        raw,
		Compressed: compressed,
		Ratio:      CompressionRatio(raw, compressed),
	}
}

// CompressionRatio returns round(compressed/raw*100, 2), or 0 for an empty artifact.
func CompressionRatio(raw, compressed int64) float64 {
	if raw <= 0 {
		return 0
	}
	return math.Round(float64(compressed)/float64(raw)*100*100) / 100
}
