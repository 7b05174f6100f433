package math

import "github.com/chewxy/math32"

const (
	Pi    = math32.Pi
	TwoPi = 2 * math32.Pi
	// HalfPi is the pitch limit; callers clamp strictly inside it.
	HalfPi = math32.Pi / 2
)

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * 180 / Pi
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle keeps an angle in the open interval (-2π, 2π) by
// subtracting whole turns. The sign is preserved.
func WrapAngle(a float32) float32 {
	if a >= TwoPi || a <= -TwoPi {
		a = math32.Mod(a, TwoPi)
	}
	return a
}

// ApproachZero moves v toward zero by step without crossing it.
func ApproachZero(v, step float32) float32 {
	switch {
	case v > step:
		return v - step
	case v < -step:
		return v + step
	default:
		return 0
	}
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
