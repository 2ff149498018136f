package shading

import (
	"testing"
)

func TestEscapeTimeBounds(t *testing.T) {
	// Every sample inside the escape disk must terminate in [0, MaxIterations].
	for x := float32(-2); x <= 2; x += 0.25 {
		for y := float32(-2); y <= 2; y += 0.25 {
			c := Vec2{x, y}
			if c.Length() > 2 {
				continue
			}
			n := EscapeTime(c)
			if n < 0 || n > MaxIterations {
				t.Errorf("EscapeTime(%v) = %d, want within [0, %d]", c, n, MaxIterations)
			}
		}
	}
}

func TestEscapeTimeOrigin(t *testing.T) {
	// The origin never escapes, so the loop must run to the cap.
	if n := EscapeTime(Vec2{0, 0}); n != MaxIterations {
		t.Errorf("EscapeTime(0,0) = %d, want %d", n, MaxIterations)
	}
}

func TestEscapeTimeStepOrder(t *testing.T) {
	// The escape check runs before each update and the count is the number
	// of completed updates. Hand-traced sequences:
	//   c=(3,0):  z=0 -> (3,0), |z|>2 stops the second pass     => 1
	//   c=(2,0):  z=0 -> (2,0) -> (6,0), |2| is not > 2         => 2
	//   c=(-2,0): z=0 -> (-2,0) -> (2,0) -> (2,0) -> ... fixed  => cap
	tests := []struct {
		name string
		c    Vec2
		want int
	}{
		{"escapes after one step", Vec2{3, 0}, 1},
		{"boundary magnitude is not an escape", Vec2{2, 0}, 2},
		{"fixed point never escapes", Vec2{-2, 0}, MaxIterations},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeTime(tt.c); got != tt.want {
				t.Errorf("EscapeTime(%v) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestIterationColorDeterministic(t *testing.T) {
	// Same factor in, bit-identical RGB out.
	for _, factor := range []float32{0, 0.01, 0.33, 0.5, 0.99, 1} {
		a := IterationColor(factor)
		b := IterationColor(factor)
		if a != b {
			t.Errorf("IterationColor(%v) not deterministic: %v vs %v", factor, a, b)
		}
	}
}

func TestIterationColorRange(t *testing.T) {
	for factor := float32(0); factor <= 1; factor += 0.05 {
		c := IterationColor(factor)
		for _, ch := range []float32{c.X, c.Y, c.Z} {
			if ch < 0 || ch > 1 {
				t.Errorf("IterationColor(%v) channel %v out of [0,1]", factor, ch)
			}
		}
	}
	if c := IterationColor(0); c != (Vec3{}) {
		t.Errorf("IterationColor(0) = %v, want black", c)
	}
}

func TestMapCoordCenter(t *testing.T) {
	view := FractalView{
		Center:     Vec2{-0.5, 0.25},
		Zoom:       2,
		Resolution: Vec2{800, 400},
	}

	// The viewport center maps exactly to the view center.
	c := MapCoord(Vec2{400, 200}, view)
	if c != view.Center {
		t.Errorf("center fragment mapped to %v, want %v", c, view.Center)
	}

	// The right edge is aspect-corrected before zoom and translation.
	c = MapCoord(Vec2{800, 200}, view)
	wantX := view.Center.X + (800.0/400.0)/view.Zoom
	if absDiff(c.X, wantX) > 1e-5 || absDiff(c.Y, view.Center.Y) > 1e-5 {
		t.Errorf("right-edge fragment mapped to %v, want (%v, %v)", c, wantX, view.Center.Y)
	}
}

func TestFractalFragmentOpaque(t *testing.T) {
	view := FractalView{Zoom: 1, Resolution: Vec2{100, 100}}
	for _, frag := range []Vec2{{0, 0}, {50, 50}, {99, 99}} {
		out := FractalFragment(frag, view)
		if out.W != 1 {
			t.Errorf("FractalFragment(%v).W = %v, want 1", frag, out.W)
		}
		if out != FractalFragment(frag, view) {
			t.Errorf("FractalFragment(%v) not deterministic", frag)
		}
	}
}

func TestQuadVertexPassthrough(t *testing.T) {
	tests := []Vec2{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}, {0.5, -0.25}}
	for _, pos := range tests {
		got := QuadVertex(pos)
		want := Vec4{pos.X, pos.Y, 0, 1}
		if got != want {
			t.Errorf("QuadVertex(%v) = %v, want %v", pos, got, want)
		}
	}
}

func absDiff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}
