package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a colour with normalised float channels in [0, 1].
// Every RGBA produced by this package is fully opaque.
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// RGB converts back to 8-bit channels, rounding to the nearest byte.
func (c RGBA) RGB() RGB {
	r, g, b := c.toColorful().Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Hex returns the hex form of the colour, discarding alpha.
func (c RGBA) Hex() string {
	return c.toColorful().Clamped().Hex()
}

func (c RGBA) toColorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: 1}
}

// Lighten adds amount to each channel, saturating at 1.
func Lighten(c RGBA, amount float64) RGBA {
	return RGBA{
		R: math.Min(1, c.R+amount),
		G: math.Min(1, c.G+amount),
		B: math.Min(1, c.B+amount),
		A: 1,
	}
}

// Mix returns the per-channel midpoint of two colours.
func Mix(a, b RGBA) RGBA {
	return RGBA{
		R: (a.R + b.R) / 2,
		G: (a.G + b.G) / 2,
		B: (a.B + b.B) / 2,
		A: 1,
	}
}

// Lerp interpolates linearly from a to b in RGB; t is clamped to [0, 1].
func Lerp(a, b RGBA, t float64) RGBA {
	t = math.Max(0, math.Min(1, t))
	return fromColorful(a.toColorful().BlendRgb(b.toColorful(), t))
}
