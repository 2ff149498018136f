package cpurender

import (
	"image"
	"image/color"
	"image/draw"

	"shaderview/internal/mesh"
	"shaderview/pkg/shading"
)

// Framebuffer is a color attachment plus a float32 depth buffer, cleared
// to depth 1 (the far plane).
type Framebuffer struct {
	Color  *image.RGBA
	Depth  []float32
	Width  int
	Height int
}

// NewFramebuffer creates a framebuffer cleared to the given color.
func NewFramebuffer(width, height int, clear color.RGBA) *Framebuffer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{clear}, image.Point{}, draw.Src)

	depth := make([]float32, width*height)
	for i := range depth {
		depth[i] = 1
	}

	return &Framebuffer{Color: img, Depth: depth, Width: width, Height: height}
}

// DrawMesh rasterizes an indexed triangle mesh through the lit-surface
// pipeline: the vertex stage runs once per vertex, attributes are
// interpolated linearly in screen space, and the fragment stage runs once
// per covered pixel that passes the depth test (compare: less).
func (fb *Framebuffer) DrawMesh(vertices []mesh.Vertex, indices []uint16, viewProj, model shading.Mat4, light shading.DirectionalLight) {
	for i := 0; i+2 < len(indices); i += 3 {
		a := fb.transform(vertices[indices[i]], viewProj, model)
		b := fb.transform(vertices[indices[i+1]], viewProj, model)
		c := fb.transform(vertices[indices[i+2]], viewProj, model)
		fb.rasterize(a, b, c, light)
	}
}

// screenPoint is a vertex-stage output projected to the framebuffer.
type screenPoint struct {
	X, Y  float32
	Depth float32
	Point shading.SurfacePoint
}

func (fb *Framebuffer) transform(v mesh.Vertex, viewProj, model shading.Mat4) screenPoint {
	p := shading.LitVertex(viewProj, model,
		shading.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]},
		shading.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]})

	inv := 1 / p.Clip.W
	return screenPoint{
		X:     (p.Clip.X*inv + 1) / 2 * float32(fb.Width),
		Y:     (1 - p.Clip.Y*inv) / 2 * float32(fb.Height),
		Depth: p.Clip.Z * inv,
		Point: p,
	}
}

func (fb *Framebuffer) rasterize(a, b, c screenPoint, light shading.DirectionalLight) {
	// Primitives crossing the camera plane are dropped wholesale rather
	// than clipped; the host keeps geometry in front of the near plane.
	if a.Point.Clip.W <= 0 || b.Point.Clip.W <= 0 || c.Point.Clip.W <= 0 {
		return
	}

	area := edge(a, b, c.X, c.Y)
	if area == 0 {
		return
	}

	minX := clampInt(int(min3(a.X, b.X, c.X)), 0, fb.Width-1)
	maxX := clampInt(int(max3(a.X, b.X, c.X))+1, 0, fb.Width-1)
	minY := clampInt(int(min3(a.Y, b.Y, c.Y)), 0, fb.Height-1)
	maxY := clampInt(int(max3(a.Y, b.Y, c.Y))+1, 0, fb.Height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			py := float32(y) + 0.5

			// Barycentric weights via edge functions; signs must agree
			// with the triangle's winding for the pixel to be covered.
			wa := edge(b, c, px, py) / area
			wb := edge(c, a, px, py) / area
			wc := edge(a, b, px, py) / area
			if wa < 0 || wb < 0 || wc < 0 {
				continue
			}

			depth := wa*a.Depth + wb*b.Depth + wc*c.Depth
			idx := y*fb.Width + x
			if depth >= fb.Depth[idx] {
				continue
			}
			fb.Depth[idx] = depth

			interp := shading.SurfacePoint{
				World:  lerp3(a.Point.World, b.Point.World, c.Point.World, wa, wb, wc),
				Normal: lerp3(a.Point.Normal, b.Point.Normal, c.Point.Normal, wa, wb, wc),
			}
			fb.Color.SetRGBA(x, y, toRGBA(shading.LitFragment(interp, light)))
		}
	}
}

// Surface renders the cube mesh through the lit-surface pipeline, cleared
// to an opaque red background.
func Surface(viewProj, model shading.Mat4, light shading.DirectionalLight, width, height int) *image.RGBA {
	fb := NewFramebuffer(width, height, color.RGBA{R: 255, A: 255})
	fb.DrawMesh(mesh.CubeVertices, mesh.CubeIndices, viewProj, model, light)
	return fb.Color
}

func edge(a, b screenPoint, px, py float32) float32 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

func lerp3(a, b, c shading.Vec3, wa, wb, wc float32) shading.Vec3 {
	return a.Scale(wa).Add(b.Scale(wb)).Add(c.Scale(wc))
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
