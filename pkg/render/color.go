// Package render provides the software rasterizer used to draw the
// facepull scene into an RGB framebuffer.
package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB creates a Color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// Common colors.
var (
	ColorBlack  = RGB(0, 0, 0)
	ColorWhite  = RGB(255, 255, 255)
	ColorRed    = RGB(255, 0, 0)
	ColorGreen  = RGB(0, 255, 0)
	ColorBlue   = RGB(0, 0, 255)
	ColorYellow = RGB(255, 220, 0)
	ColorOrange = RGB(255, 140, 0)
	ColorGray   = RGB(128, 128, 128)
)

// Scale multiplies every channel by f, clamping to [0, 255].
func (c Color) Scale(f float64) Color {
	return RGB(clampByte(float64(c.R)*f), clampByte(float64(c.G)*f), clampByte(float64(c.B)*f))
}

// Lerp blends c toward o by t in [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	return RGB(
		clampByte(float64(c.R)+(float64(o.R)-float64(c.R))*t),
		clampByte(float64(c.G)+(float64(o.G)-float64(c.G))*t),
		clampByte(float64(c.B)+(float64(o.B)-float64(c.B))*t),
	)
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// ParseHexColor parses "#rrggbb" or "rrggbb".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
