package cpurender

import (
	"testing"

	"shaderview/pkg/shading"
)

func TestFractalImageShape(t *testing.T) {
	view := shading.FractalView{Center: shading.Vec2{X: -0.5}, Zoom: 1}
	img := Fractal(view, 64, 32)

	bounds := img.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 32 {
		t.Fatalf("image is %dx%d, want 64x32", bounds.Dx(), bounds.Dy())
	}
}

func TestFractalDeterministic(t *testing.T) {
	view := shading.FractalView{Center: shading.Vec2{X: -0.5}, Zoom: 1.5}
	a := Fractal(view, 48, 48)
	b := Fractal(view, 48, 48)

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel data differs at byte %d: repeated renders must be identical", i)
		}
	}
}

func TestFractalMatchesFragmentStage(t *testing.T) {
	// The renderer is a plain execution substrate: each pixel must equal a
	// direct invocation of the fragment stage at its center.
	view := shading.FractalView{Center: shading.Vec2{X: -0.5}, Zoom: 2}
	img := Fractal(view, 32, 32)
	view.Resolution = shading.Vec2{X: 32, Y: 32}

	for _, p := range [][2]int{{0, 0}, {16, 16}, {31, 5}, {7, 29}} {
		frag := shading.Vec2{X: float32(p[0]) + 0.5, Y: float32(p[1]) + 0.5}
		want := toRGBA(shading.FractalFragment(frag, view))
		if got := img.RGBAAt(p[0], p[1]); got != want {
			t.Errorf("pixel (%d,%d) = %v, want %v", p[0], p[1], got, want)
		}
	}
}

func TestFractalOpaque(t *testing.T) {
	img := Fractal(shading.FractalView{Zoom: 1}, 16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if img.RGBAAt(x, y).A != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, img.RGBAAt(x, y).A)
			}
		}
	}
}

func TestChannelByteClamps(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2, 255},
	}
	for _, tt := range tests {
		if got := channelByte(tt.in); got != tt.want {
			t.Errorf("channelByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
