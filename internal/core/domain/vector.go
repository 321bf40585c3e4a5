package domain

import (
	"fmt"
	"math"
)

// UnitTolerance is the allowed deviation of a normalised vector's norm from 1.
const UnitTolerance = 1e-3

// L2Norm returns the Euclidean length of v.
func L2Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		f := float64(x)
		sum += f * f
	}
	return math.Sqrt(sum)
}

// Normalize returns v scaled to unit length. It returns an error for an
// empty or zero-magnitude vector.
func Normalize(v []float32) ([]float32, error) {
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrZeroVector)
	}
	n := L2Norm(v)
	if n == 0 {
		return nil, ErrZeroVector
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / n)
	}
	return out, nil
}

// IsUnit reports whether v has unit length within UnitTolerance.
func IsUnit(v []float32) bool {
	return math.Abs(L2Norm(v)-1) <= UnitTolerance
}
