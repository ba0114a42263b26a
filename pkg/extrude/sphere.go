package extrude

import "math"

// DefaultSensitivity is the scale change per pixel of horizontal movement.
const DefaultSensitivity = 0.001

// ScaleSphere returns the uniform scale after a horizontal pointer movement
// of deltaX pixels. The result never drops below zero.
func ScaleSphere(current, deltaX, sensitivity float64) float64 {
	return math.Max(0, current+deltaX*sensitivity)
}
