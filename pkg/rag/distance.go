package rag

import (
	"fmt"
	"math"
)

// Metric selects the distance function used for scoring. The paired
// threshold is scale-dependent, so a deployment must never mix metrics.
type Metric string

const (
	MetricCosine    Metric = "cosine"
	MetricEuclidean Metric = "euclidean"
)

// DistanceFunc scores two vectors of equal dimensionality. Smaller is closer.
type DistanceFunc func(a, b []float32) float64

// FuncForMetric resolves a metric name to its distance function.
func FuncForMetric(m Metric) (DistanceFunc, error) {
	switch m {
	case MetricCosine:
		return CosineDistance, nil
	case MetricEuclidean:
		return EuclideanDistance, nil
	default:
		return nil, fmt.Errorf("unknown distance metric %q", m)
	}
}

// CosineDistance computes 1 - cos(a, b). A zero-magnitude vector carries no
// direction, so its distance is defined as 1.0 (maximal).
func CosineDistance(a, b []float32) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 1.0
	}
	return 1.0 - dot/(math.Sqrt(magA)*math.Sqrt(magB))
}

// EuclideanDistance computes sqrt(sum((a_i - b_i)^2)). Unbounded and
// sensitive to embedding-space magnitude.
func EuclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
