package gradient

import (
	"math"
	"testing"

	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

func closeTo(a, b plugin.Colour) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestBuildRed(t *testing.T) {
	paint := Build("#ff0000", "#00ffff")

	if paint.Type != plugin.PaintGradientLinear {
		t.Errorf("Type = %q, want %q", paint.Type, plugin.PaintGradientLinear)
	}
	if len(paint.GradientStops) != 3 {
		t.Fatalf("got %d stops, want 3", len(paint.GradientStops))
	}

	want := []plugin.ColourStop{
		{Color: plugin.Colour{R: 1, G: 0, B: 0, A: 1}, Position: 0},
		{Color: plugin.Colour{R: 1, G: 0.2, B: 0.2, A: 1}, Position: 0.5},
		{Color: plugin.Colour{R: 0, G: 1, B: 1, A: 1}, Position: 1},
	}
	for i, stop := range paint.GradientStops {
		if stop.Position != want[i].Position {
			t.Errorf("stop %d position = %v, want %v", i, stop.Position, want[i].Position)
		}
		if !closeTo(stop.Color, want[i].Color) {
			t.Errorf("stop %d colour = %+v, want %+v", i, stop.Color, want[i].Color)
		}
	}

	if paint.GradientTransform == nil {
		t.Fatal("GradientTransform is nil")
	}
	if *paint.GradientTransform != AxisTransform {
		t.Errorf("GradientTransform = %v, want %v", *paint.GradientTransform, AxisTransform)
	}
}

func TestBuildDoesNotShareTransform(t *testing.T) {
	a := Build("#000000", "#ffffff")
	a.GradientTransform[0][0] = 42

	b := Build("#000000", "#ffffff")
	if b.GradientTransform[0][0] != 0 {
		t.Error("mutating one paint's transform leaked into another")
	}
	if AxisTransform[0][0] != 0 {
		t.Error("mutating a paint's transform changed AxisTransform")
	}
}

func TestBuildSaturatesMiddleStop(t *testing.T) {
	paint := Build("#ffffff", "#000000")
	mid := paint.GradientStops[1].Color
	if mid.R != 1 || mid.G != 1 || mid.B != 1 {
		t.Errorf("middle stop = %+v, want white", mid)
	}
}

func TestCSS(t *testing.T) {
	got := CSS("#336699", "#cc9966")
	want := "linear-gradient(to right, #336699, #cc9966)"
	if got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}
