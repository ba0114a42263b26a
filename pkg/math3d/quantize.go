package math3d

import "math"

// GridKey is a hashable, quantized position. Two positions share a key when
// they round to the same grid cell.
type GridKey struct {
	X, Y, Z int64
}

// Quantize maps v onto a grid of the given cell size.
// A size <= 0 uses a 1e-12 grid, which only merges positions that are equal
// up to float noise.
func Quantize(v Vec3, size float64) GridKey {
	if size <= 0 {
		size = 1e-12
	}
	scale := 1.0 / size
	return GridKey{
		X: int64(math.Round(v.X * scale)),
		Y: int64(math.Round(v.Y * scale)),
		Z: int64(math.Round(v.Z * scale)),
	}
}
