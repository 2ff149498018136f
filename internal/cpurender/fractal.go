// Package cpurender executes the shading stages on the CPU, invoking the
// pure per-pixel functions once per work item. It backs the headless
// renderer and the HTTP preview server.
package cpurender

import (
	"image"
	"image/color"
	"runtime"
	"sync"

	"shaderview/pkg/shading"
)

// Fractal renders the fractal pipeline to an image. Rows are distributed
// across worker goroutines; every pixel invocation is independent, so the
// result does not depend on scheduling order.
func Fractal(view shading.FractalView, width, height int) *image.RGBA {
	view.Resolution = shading.Vec2{X: float32(width), Y: float32(height)}
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	rows := make(chan int, height)
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				for x := 0; x < width; x++ {
					frag := shading.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}
					img.SetRGBA(x, y, toRGBA(shading.FractalFragment(frag, view)))
				}
			}
		}()
	}
	wg.Wait()

	return img
}

func toRGBA(c shading.Vec4) color.RGBA {
	return color.RGBA{
		R: channelByte(c.X),
		G: channelByte(c.Y),
		B: channelByte(c.Z),
		A: channelByte(c.W),
	}
}

func channelByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
