package indicators

import "math"

// Finite returns x unless it is NaN or infinite, in which case the fallback
// is returned. Every indicator applies this at its computation boundary so
// bad input degrades to a documented value instead of poisoning the pipeline.
func Finite(x, fallback float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fallback
	}
	return x
}

// Clamp bounds x into [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
