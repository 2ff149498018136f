package renderer

import (
	"unsafe"

	"shaderview/pkg/shading"
)

// fractalUniforms mirrors the FractalUniforms WGSL block byte for byte:
// time at 0, center at 8, zoom at 16, resolution at 24.
type fractalUniforms struct {
	Time       float32
	_          float32
	Center     [2]float32
	Zoom       float32
	_          float32
	Resolution [2]float32
}

// lightUniforms mirrors the Light WGSL block: each vec3 is padded out to
// 16 bytes.
type lightUniforms struct {
	Dir   [3]float32
	_     float32
	Color [3]float32
	_     float32
}

// matUniform is a mat4x4<f32> in column-major order.
type matUniform [16]float32

// These layouts are the binary contract with the shaders; assert the sizes
// at compile time so a struct edit cannot silently skew the bindings.
var (
	_ [32]byte = [unsafe.Sizeof(fractalUniforms{})]byte{}
	_ [32]byte = [unsafe.Sizeof(lightUniforms{})]byte{}
	_ [64]byte = [unsafe.Sizeof(matUniform{})]byte{}
)

func newFractalUniforms(view shading.FractalView) fractalUniforms {
	return fractalUniforms{
		Time:       view.Time,
		Center:     [2]float32{view.Center.X, view.Center.Y},
		Zoom:       view.Zoom,
		Resolution: [2]float32{view.Resolution.X, view.Resolution.Y},
	}
}

func newLightUniforms(light shading.DirectionalLight) lightUniforms {
	return lightUniforms{
		Dir:   [3]float32{light.Dir.X, light.Dir.Y, light.Dir.Z},
		Color: [3]float32{light.Color.X, light.Color.Y, light.Color.Z},
	}
}
