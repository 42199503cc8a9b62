// Package gradient builds the complementary linear gradient applied to
// selected nodes and the CSS string shown in the panel preview.
package gradient

import (
	"fmt"

	"github.com/jmylchreest/gradientfill/internal/colour"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// MiddleLighten is how much the primary colour is lightened for the centre stop.
const MiddleLighten = 0.2

// AxisTransform is the fixed 2x3 transform placing the gradient axis on every
// filled node, running from the primary stop to the complement.
var AxisTransform = plugin.Transform{
	{0, 1, 0},
	{-1, 0, 1},
}

// Stop positions along the gradient axis.
const (
	PositionStart  = 0.0
	PositionMiddle = 0.5
	PositionEnd    = 1.0
)

// Build returns a three-stop linear gradient running from primary, through a
// lightened primary, to complement. Both colours are hex strings and are not
// validated.
func Build(primary, complement string) plugin.Paint {
	start := colour.HexToNormalised(primary)
	end := colour.HexToNormalised(complement)
	middle := colour.Lighten(start, MiddleLighten)

	transform := AxisTransform
	return plugin.Paint{
		Type: plugin.PaintGradientLinear,
		GradientStops: []plugin.ColourStop{
			{Color: ToColour(start), Position: PositionStart},
			{Color: ToColour(middle), Position: PositionMiddle},
			{Color: ToColour(end), Position: PositionEnd},
		},
		GradientTransform: &transform,
	}
}

// CSS returns the panel preview for a gradient between two hex colours.
func CSS(primary, complement string) string {
	return fmt.Sprintf("linear-gradient(to right, %s, %s)", primary, complement)
}

// ToColour converts a normalised colour to its wire form.
func ToColour(c colour.RGBA) plugin.Colour {
	return plugin.Colour{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColour converts a wire colour back to normalised RGBA.
func FromColour(c plugin.Colour) colour.RGBA {
	return colour.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
