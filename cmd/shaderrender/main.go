package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"shaderview/internal/camera"
	"shaderview/internal/config"
	"shaderview/internal/cpurender"
	"shaderview/pkg/shading"
)

func main() {
	pipeline := flag.String("pipeline", config.PipelineFractal, "pipeline to render: fractal or surface")
	out := flag.String("o", "frame.png", "output PNG path")
	width := flag.Int("width", 800, "image width in pixels")
	height := flag.Int("height", 400, "image height in pixels")
	centerX := flag.Float64("cx", -0.5, "fractal view center x")
	centerY := flag.Float64("cy", 0, "fractal view center y")
	zoom := flag.Float64("zoom", 1, "fractal zoom factor")
	timeSec := flag.Float64("time", 0, "shader time in seconds")
	flag.Parse()

	var img *image.RGBA
	switch *pipeline {
	case config.PipelineFractal:
		cam := camera.NewPlaneCamera(*centerX, *centerY, *zoom, *width, *height)
		img = cpurender.Fractal(cam.View(float32(*timeSec)), *width, *height)
	case config.PipelineSurface:
		cfg := config.DefaultConfig()
		cam := camera.NewOrbitCamera()
		aspect := float32(*width) / float32(*height)
		model := shading.RotateY(float32(*timeSec) * 0.5)
		light := shading.DirectionalLight{
			Dir: shading.Vec3{
				X: float32(cfg.Rendering.LightDir[0]),
				Y: float32(cfg.Rendering.LightDir[1]),
				Z: float32(cfg.Rendering.LightDir[2]),
			},
			Color: shading.Vec3{
				X: float32(cfg.Rendering.LightColor[0]),
				Y: float32(cfg.Rendering.LightColor[1]),
				Z: float32(cfg.Rendering.LightColor[2]),
			},
		}
		img = cpurender.Surface(cam.ViewProj(aspect), model, light, *width, *height)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown pipeline %q\n", *pipeline)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%dx%d, %s)\n", *out, *width, *height, *pipeline)
}
