package shading

import (
	"github.com/chewxy/math32"
)

const (
	// MaxIterations caps the escape-time loop, bounding per-pixel work.
	MaxIterations = 100

	// EscapeRadius is the |z| threshold beyond which a point has diverged.
	EscapeRadius = 2.0
)

// FractalView holds the per-frame parameters of the fractal pipeline. It is
// populated by the host once per frame and read-only during shading.
type FractalView struct {
	// Time is the seconds elapsed since startup, advanced by the host.
	// The base coloring does not consume it; animated variants do.
	Time float32

	// Center is the fractal-plane coordinate mapped to the viewport center.
	Center Vec2

	// Zoom divides the normalized viewport coordinate; larger is closer.
	// Must be positive.
	Zoom float32

	// Resolution is the render-target size in pixels, used for aspect
	// correction. Supplied by the host from the actual target each frame.
	Resolution Vec2
}

// MapCoord maps a screen-space fragment coordinate to a point in the
// fractal plane: normalize to [-1, 1], correct x by the aspect ratio,
// divide by zoom, translate by center.
func MapCoord(frag Vec2, view FractalView) Vec2 {
	uv := Vec2{
		X: frag.X/view.Resolution.X*2 - 1,
		Y: frag.Y/view.Resolution.Y*2 - 1,
	}
	uv.X *= view.Resolution.X / view.Resolution.Y
	return uv.Scale(1 / view.Zoom).Add(view.Center)
}

// EscapeTime iterates z <- z^2 + c from z = 0 and returns the number of
// completed steps before |z| exceeded EscapeRadius, capped at
// MaxIterations. The escape check runs before each step, so the count at
// termination is exactly the number of updates applied.
func EscapeTime(c Vec2) int {
	z := Vec2{}
	n := 0
	for n < MaxIterations {
		if z.Length() > EscapeRadius {
			break
		}
		z = Vec2{
			X: z.X*z.X - z.Y*z.Y + c.X,
			Y: 2*z.X*z.Y + c.Y,
		}
		n++
	}
	return n
}

// IterationColor maps a normalized escape factor in [0, 1] to an RGB
// triple: three sinusoids at frequencies 10, 15 and 20, each remapped from
// [-1, 1] to [0, 1] and then scaled by the factor itself, so immediate
// escapes render near black and interior points at full brightness.
func IterationColor(factor float32) Vec3 {
	return Vec3{
		X: (math32.Sin(factor*10)*0.5 + 0.5) * factor,
		Y: (math32.Sin(factor*15)*0.5 + 0.5) * factor,
		Z: (math32.Sin(factor*20)*0.5 + 0.5) * factor,
	}
}

// FractalFragment is the fragment stage of the fractal pipeline: a pure
// function of the view uniforms and the fragment's screen coordinate.
// Alpha is always fully opaque.
func FractalFragment(frag Vec2, view FractalView) Vec4 {
	c := MapCoord(frag, view)
	factor := float32(EscapeTime(c)) / MaxIterations
	rgb := IterationColor(factor)
	return Vec4{rgb.X, rgb.Y, rgb.Z, 1}
}

// QuadVertex is the vertex stage of the fractal pipeline: a passthrough
// that extends the 2D clip-space position with z=0, w=1. The geometry is
// assumed to be a full-viewport quad.
func QuadVertex(pos Vec2) Vec4 {
	return Vec4{pos.X, pos.Y, 0, 1}
}
