package cpurender

import (
	"image/color"
	"testing"

	"shaderview/internal/mesh"
	"shaderview/pkg/shading"
)

var testLight = shading.DirectionalLight{
	Dir:   shading.Vec3{X: 0, Y: 0, Z: -1},
	Color: shading.Vec3{X: 1, Y: 1, Z: 1},
}

// tri builds a screen-covering triangle at a fixed NDC depth with a fixed
// normal, bypassing any model transform.
func tri(z float32, normal [3]float32) []mesh.Vertex {
	return []mesh.Vertex{
		{Position: [3]float32{-3, -3, z}, Normal: normal},
		{Position: [3]float32{3, -3, z}, Normal: normal},
		{Position: [3]float32{0, 3, z}, Normal: normal},
	}
}

func TestDrawMeshCoversCenter(t *testing.T) {
	fb := NewFramebuffer(32, 32, color.RGBA{A: 255})
	fb.DrawMesh(tri(0, [3]float32{0, 0, 1}), []uint16{0, 1, 2}, shading.Identity(), shading.Identity(), testLight)

	// Normal +Z against light -Z gives the full diffuse term.
	got := fb.Color.RGBAAt(16, 16)
	want := toRGBA(shading.Vec4{X: shading.Albedo.X, Y: shading.Albedo.Y, Z: shading.Albedo.Z, W: 1})
	if got != want {
		t.Errorf("center pixel = %v, want %v", got, want)
	}
}

func TestDrawMeshDepthTest(t *testing.T) {
	near := tri(-0.5, [3]float32{0, 0, 1})  // lit
	far := tri(0.5, [3]float32{0, 0, -1})   // back-facing, black
	indices := []uint16{0, 1, 2}

	litPixel := toRGBA(shading.Vec4{X: shading.Albedo.X, Y: shading.Albedo.Y, Z: shading.Albedo.Z, W: 1})

	// Far then near: near overwrites.
	fb := NewFramebuffer(16, 16, color.RGBA{A: 255})
	fb.DrawMesh(far, indices, shading.Identity(), shading.Identity(), testLight)
	fb.DrawMesh(near, indices, shading.Identity(), shading.Identity(), testLight)
	if got := fb.Color.RGBAAt(8, 8); got != litPixel {
		t.Errorf("far-then-near center = %v, want %v", got, litPixel)
	}

	// Near then far: far is rejected by the depth test.
	fb = NewFramebuffer(16, 16, color.RGBA{A: 255})
	fb.DrawMesh(near, indices, shading.Identity(), shading.Identity(), testLight)
	fb.DrawMesh(far, indices, shading.Identity(), shading.Identity(), testLight)
	if got := fb.Color.RGBAAt(8, 8); got != litPixel {
		t.Errorf("near-then-far center = %v, want %v", got, litPixel)
	}
}

func TestDrawMeshDegenerateTriangle(t *testing.T) {
	// Zero-area triangles must be skipped, not crash or paint.
	verts := []mesh.Vertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 0, 1}},
	}
	fb := NewFramebuffer(8, 8, color.RGBA{A: 255})
	fb.DrawMesh(verts, []uint16{0, 1, 2}, shading.Identity(), shading.Identity(), testLight)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := fb.Color.RGBAAt(x, y); got != (color.RGBA{A: 255}) {
				t.Fatalf("degenerate triangle painted pixel (%d,%d): %v", x, y, got)
			}
		}
	}
}

func TestSurfaceRendersCube(t *testing.T) {
	viewProj := shading.Perspective(0.785, 1, 0.1, 100).
		Mul(shading.LookAt(shading.Vec3{X: 3, Y: 2, Z: 4}, shading.Vec3{}, shading.Vec3{Y: 1}))
	light := shading.DirectionalLight{
		Dir:   shading.Vec3{X: -0.8, Y: -1, Z: -1},
		Color: shading.Vec3{X: 0, Y: 1, Z: 1},
	}

	img := Surface(viewProj, shading.Identity(), light, 64, 64)
	background := color.RGBA{R: 255, A: 255}

	if got := img.RGBAAt(32, 32); got == background {
		t.Error("center pixel is background, want the cube")
	}
	if got := img.RGBAAt(1, 1); got != background {
		t.Errorf("corner pixel = %v, want background %v", got, background)
	}
}

func TestSurfaceBehindCameraDropped(t *testing.T) {
	// A model pushed behind the camera must render nothing.
	viewProj := shading.Perspective(0.785, 1, 0.1, 100).
		Mul(shading.LookAt(shading.Vec3{Z: 5}, shading.Vec3{}, shading.Vec3{Y: 1}))
	model := shading.Translate(shading.Vec3{Z: 20})

	img := Surface(viewProj, model, testLight, 16, 16)
	background := color.RGBA{R: 255, A: 255}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := img.RGBAAt(x, y); got != background {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
}
