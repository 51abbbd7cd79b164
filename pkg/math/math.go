// Package math provides the float32 vector, matrix, and quaternion types
// used by the wireview transform pipeline.
//
// Conventions, fixed once for the whole module: right-handed coordinates,
// +Y is up, and the camera looks down -Z. Matrices are column-major.
// Angles are radians.
package math

import "github.com/chewxy/math32"

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Clamp limits v to the interval [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle wraps an angle in radians to [0, 2*pi).
func WrapAngle(a float32) float32 {
	a = math32.Mod(a, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a
}
