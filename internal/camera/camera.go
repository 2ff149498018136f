package camera

import (
	"math"

	"shaderview/pkg/shading"
)

const (
	MinZoom = 0.25
	MaxZoom = 1e7
)

// PlaneCamera is the viewport onto the fractal plane: the plane coordinate
// at the viewport center plus a zoom factor.
type PlaneCamera struct {
	CenterX float64
	CenterY float64
	Zoom    float64

	// Viewport dimensions
	ViewportWidth  int
	ViewportHeight int

	// State tracking
	isDragging bool
	lastDragX  float64
	lastDragY  float64
}

// NewPlaneCamera creates a camera centered on the given plane coordinate.
func NewPlaneCamera(centerX, centerY, zoom float64, width, height int) *PlaneCamera {
	return &PlaneCamera{
		CenterX:        centerX,
		CenterY:        centerY,
		Zoom:           clampZoom(zoom),
		ViewportWidth:  width,
		ViewportHeight: height,
	}
}

// SetViewport updates the viewport dimensions.
func (c *PlaneCamera) SetViewport(width, height int) {
	c.ViewportWidth = width
	c.ViewportHeight = height
}

// StartDrag begins a drag at the given cursor position.
func (c *PlaneCamera) StartDrag(x, y float64) {
	c.isDragging = true
	c.lastDragX = x
	c.lastDragY = y
}

// Drag pans the view by the cursor movement since the last drag event.
func (c *PlaneCamera) Drag(x, y float64) {
	if !c.isDragging {
		return
	}
	dx := x - c.lastDragX
	dy := y - c.lastDragY
	c.lastDragX = x
	c.lastDragY = y

	// One full viewport height spans 2/zoom plane units; x carries the
	// same scale because the aspect correction happens per-fragment.
	unitsPerPixel := 2 / c.Zoom / float64(c.ViewportHeight)
	c.CenterX -= dx * unitsPerPixel
	c.CenterY -= dy * unitsPerPixel
}

// EndDrag finishes a drag.
func (c *PlaneCamera) EndDrag() {
	c.isDragging = false
}

// IsDragging reports whether a drag is in progress.
func (c *PlaneCamera) IsDragging() bool {
	return c.isDragging
}

// ZoomBy scales the zoom by the given factor, clamped to the valid range.
func (c *PlaneCamera) ZoomBy(factor float64) {
	c.Zoom = clampZoom(c.Zoom * factor)
}

// ZoomAtPoint zooms by the given factor while keeping the plane point under
// the cursor fixed on screen.
func (c *PlaneCamera) ZoomAtPoint(factor, cursorX, cursorY float64) {
	px, py := c.planeAt(cursorX, cursorY)
	newZoom := clampZoom(c.Zoom * factor)

	// Keep (px, py) under the cursor: its offset from the center in plane
	// units shrinks by oldZoom/newZoom.
	scale := c.Zoom / newZoom
	c.CenterX = px - (px-c.CenterX)*scale
	c.CenterY = py - (py-c.CenterY)*scale
	c.Zoom = newZoom
}

// planeAt returns the fractal-plane coordinate under a cursor position.
func (c *PlaneCamera) planeAt(cursorX, cursorY float64) (float64, float64) {
	w := float64(c.ViewportWidth)
	h := float64(c.ViewportHeight)
	ux := (cursorX/w*2 - 1) * (w / h)
	uy := cursorY/h*2 - 1
	return ux/c.Zoom + c.CenterX, uy/c.Zoom + c.CenterY
}

// View returns the single-precision uniform view for the current state.
func (c *PlaneCamera) View(time float32) shading.FractalView {
	return shading.FractalView{
		Time:   time,
		Center: shading.Vec2{X: float32(c.CenterX), Y: float32(c.CenterY)},
		Zoom:   float32(c.Zoom),
		Resolution: shading.Vec2{
			X: float32(c.ViewportWidth),
			Y: float32(c.ViewportHeight),
		},
	}
}

func clampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

const (
	orbitSensitivity = 0.01
	maxPitch         = math.Pi/2 - 0.01
)

// OrbitCamera orbits a target point at a fixed distance, driven by mouse
// drag.
type OrbitCamera struct {
	Yaw      float64
	Pitch    float64
	Distance float64
	Target   shading.Vec3

	isDragging bool
	lastDragX  float64
	lastDragY  float64
}

// NewOrbitCamera creates an orbit camera looking at the origin.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Yaw:      0.9,
		Pitch:    0.4,
		Distance: 5.4,
	}
}

// StartDrag begins a drag at the given cursor position.
func (c *OrbitCamera) StartDrag(x, y float64) {
	c.isDragging = true
	c.lastDragX = x
	c.lastDragY = y
}

// Drag orbits by the cursor movement since the last drag event, clamping
// pitch short of the poles.
func (c *OrbitCamera) Drag(x, y float64) {
	if !c.isDragging {
		return
	}
	dx := x - c.lastDragX
	dy := y - c.lastDragY
	c.lastDragX = x
	c.lastDragY = y

	c.Yaw += dx * orbitSensitivity
	c.Pitch += dy * orbitSensitivity
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// EndDrag finishes a drag.
func (c *OrbitCamera) EndDrag() {
	c.isDragging = false
}

// IsDragging reports whether a drag is in progress.
func (c *OrbitCamera) IsDragging() bool {
	return c.isDragging
}

// Eye returns the camera position derived from yaw, pitch and distance.
func (c *OrbitCamera) Eye() shading.Vec3 {
	return shading.Vec3{
		X: float32(c.Distance * math.Cos(c.Yaw) * math.Cos(c.Pitch)),
		Y: float32(c.Distance * math.Sin(c.Pitch)),
		Z: float32(c.Distance * math.Sin(c.Yaw) * math.Cos(c.Pitch)),
	}.Add(c.Target)
}

// ViewProj returns the combined view-projection transform for the given
// viewport aspect ratio: 45 degree vertical FOV, near 0.1, far 100.
func (c *OrbitCamera) ViewProj(aspect float32) shading.Mat4 {
	proj := shading.Perspective(math.Pi/4, aspect, 0.1, 100)
	view := shading.LookAt(c.Eye(), c.Target, shading.Vec3{Y: 1})
	return proj.Mul(view)
}
