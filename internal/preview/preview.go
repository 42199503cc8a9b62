// Package preview rasterises gradient paints so the result of a fill can be
// inspected without the host's renderer.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/jmylchreest/gradientfill/internal/gradient"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// Default preview size, matching the panel the plugin requests.
const (
	DefaultWidth  = 350
	DefaultHeight = 440
)

// ErrUnsupportedPaint is returned for paints other than linear gradients.
var ErrUnsupportedPaint = errors.New("only linear gradient paints can be previewed")

// Render draws paint filling a w x h rectangle.
func Render(paint plugin.Paint, w, h int) (image.Image, error) {
	if paint.Type != plugin.PaintGradientLinear || len(paint.GradientStops) == 0 {
		return nil, ErrUnsupportedPaint
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", w, h)
	}

	x0, y0, x1, y1 := axis(paint.GradientTransform)
	fw, fh := float64(w), float64(h)

	grad := gg.NewLinearGradient(x0*fw, y0*fh, x1*fw, y1*fh)
	for _, stop := range paint.GradientStops {
		grad.AddColorStop(stop.Position, toColor(stop.Color))
	}

	dc := gg.NewContext(w, h)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, fw, fh)
	dc.Fill()
	return dc.Image(), nil
}

// WritePNG renders paint and encodes it as PNG to out.
func WritePNG(out io.Writer, paint plugin.Paint, w, h int) error {
	img, err := Render(paint, w, h)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// SavePNG renders paint to a PNG file.
func SavePNG(path string, paint plugin.Paint, w, h int) error {
	img, err := Render(paint, w, h)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

// axis returns the gradient's start and end points in unit node space. The
// gradient axis runs from (0, 0.5) to (1, 0.5) in gradient space; the paint
// transform maps node space into gradient space, so its inverse places the
// axis on the node. A missing or singular transform yields left to right.
func axis(t *plugin.Transform) (x0, y0, x1, y1 float64) {
	if t == nil {
		return 0, 0.5, 1, 0.5
	}
	a, b, c := t[0][0], t[0][1], t[0][2]
	d, e, f := t[1][0], t[1][1], t[1][2]
	det := a*e - b*d
	if math.Abs(det) < 1e-12 {
		return 0, 0.5, 1, 0.5
	}

	invert := func(gx, gy float64) (float64, float64) {
		gx, gy = gx-c, gy-f
		return (e*gx - b*gy) / det, (a*gy - d*gx) / det
	}
	x0, y0 = invert(0, 0.5)
	x1, y1 = invert(1, 0.5)
	return x0, y0, x1, y1
}

func toColor(c plugin.Colour) color.Color {
	rgb := gradient.FromColour(c).RGB()
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}
