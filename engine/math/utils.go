package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Saturate clamps every component of v into [0, 1].
func (v Vec4) Saturate() Vec4 {
	return Vec4{
		X: Clamp[float32](v.X, 0, 1),
		Y: Clamp[float32](v.Y, 0, 1),
		Z: Clamp[float32](v.Z, 0, 1),
		W: Clamp[float32](v.W, 0, 1),
	}
}
