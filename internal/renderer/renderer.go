package renderer

import (
	"fmt"
	"unsafe"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"shaderview/internal/mesh"
	"shaderview/pkg/shading"
)

// Renderer owns the WebGPU resources of both shading pipelines: the
// full-viewport fractal quad and the depth-tested lit cube.
type Renderer struct {
	device          *wgpu.Device
	queue           *wgpu.Queue
	surface         *wgpu.Surface
	adapter         *wgpu.Adapter
	swapChain       *wgpu.SwapChain
	swapChainFormat wgpu.TextureFormat

	fractalPipeline *wgpu.RenderPipeline
	fractalLayout   *wgpu.BindGroupLayout
	fractalGroup    *wgpu.BindGroup
	fractalUniform  *wgpu.Buffer
	quadBuffer      *wgpu.Buffer

	surfacePipeline  *wgpu.RenderPipeline
	surfaceLayout    *wgpu.BindGroupLayout
	surfaceGroup     *wgpu.BindGroup
	cameraUniform    *wgpu.Buffer
	modelUniform     *wgpu.Buffer
	lightUniform     *wgpu.Buffer
	cubeVertexBuffer *wgpu.Buffer
	cubeIndexBuffer  *wgpu.Buffer

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	width  uint32
	height uint32
}

// NewRenderer creates a renderer for the given surface with the given WGSL
// sources.
func NewRenderer(adapter *wgpu.Adapter, device *wgpu.Device, queue *wgpu.Queue, surface *wgpu.Surface, width, height uint32, fractalSrc, surfaceSrc string) (*Renderer, error) {
	r := &Renderer{
		adapter: adapter,
		device:  device,
		queue:   queue,
		surface: surface,
		width:   width,
		height:  height,
	}

	if err := r.init(fractalSrc, surfaceSrc); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) init(fractalSrc, surfaceSrc string) error {
	r.swapChainFormat = r.surface.GetPreferredFormat(r.adapter)

	var err error
	r.swapChain, err = r.device.CreateSwapChain(r.surface, &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      r.swapChainFormat,
		Width:       r.width,
		Height:      r.height,
		PresentMode: wgpu.PresentMode_Fifo,
	})
	if err != nil {
		return fmt.Errorf("swap chain creation failed: %w", err)
	}

	if err := r.createBuffers(); err != nil {
		return err
	}
	if err := r.createBindGroups(); err != nil {
		return err
	}
	if err := r.buildPipelines(fractalSrc, surfaceSrc); err != nil {
		return err
	}
	if err := r.createDepthView(); err != nil {
		return err
	}

	return nil
}

func (r *Renderer) createBuffers() error {
	var err error

	r.quadBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "quad_vertices",
		Contents: wgpu.ToBytes(mesh.Quad),
		Usage:    wgpu.BufferUsage_Vertex,
	})
	if err != nil {
		return fmt.Errorf("quad buffer creation failed: %w", err)
	}

	r.cubeVertexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "cube_vertices",
		Contents: wgpu.ToBytes(mesh.CubeVertices),
		Usage:    wgpu.BufferUsage_Vertex,
	})
	if err != nil {
		return fmt.Errorf("cube vertex buffer creation failed: %w", err)
	}

	r.cubeIndexBuffer, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "cube_indices",
		Contents: wgpu.ToBytes(mesh.CubeIndices),
		Usage:    wgpu.BufferUsage_Index,
	})
	if err != nil {
		return fmt.Errorf("cube index buffer creation failed: %w", err)
	}

	r.fractalUniform, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "fractal_uniform",
		Contents: wgpu.ToBytes([]fractalUniforms{{Zoom: 1}}),
		Usage:    wgpu.BufferUsage_Uniform | wgpu.BufferUsage_CopyDst,
	})
	if err != nil {
		return fmt.Errorf("fractal uniform creation failed: %w", err)
	}

	identity := matUniform(shading.Identity())
	r.cameraUniform, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "camera_uniform",
		Contents: wgpu.ToBytes([]matUniform{identity}),
		Usage:    wgpu.BufferUsage_Uniform | wgpu.BufferUsage_CopyDst,
	})
	if err != nil {
		return fmt.Errorf("camera uniform creation failed: %w", err)
	}

	r.modelUniform, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "model_uniform",
		Contents: wgpu.ToBytes([]matUniform{identity}),
		Usage:    wgpu.BufferUsage_Uniform | wgpu.BufferUsage_CopyDst,
	})
	if err != nil {
		return fmt.Errorf("model uniform creation failed: %w", err)
	}

	r.lightUniform, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "light_uniform",
		Contents: wgpu.ToBytes([]lightUniforms{{}}),
		Usage:    wgpu.BufferUsage_Uniform | wgpu.BufferUsage_CopyDst,
	})
	if err != nil {
		return fmt.Errorf("light uniform creation failed: %w", err)
	}

	return nil
}

func (r *Renderer) createBindGroups() error {
	var err error

	// Fractal pipeline: one uniform block at group 0 binding 0.
	r.fractalLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "fractal_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStage_Vertex | wgpu.ShaderStage_Fragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_Uniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("fractal bind group layout creation failed: %w", err)
	}

	r.fractalGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "fractal_bind_group",
		Layout: r.fractalLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.fractalUniform, Size: uint64(unsafe.Sizeof(fractalUniforms{}))},
		},
	})
	if err != nil {
		return fmt.Errorf("fractal bind group creation failed: %w", err)
	}

	// Lit-surface pipeline: camera at 0, model at 1, light at 2.
	r.surfaceLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "surface_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStage_Vertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_Uniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStage_Vertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_Uniform},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStage_Fragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_Uniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("surface bind group layout creation failed: %w", err)
	}

	r.surfaceGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "surface_bind_group",
		Layout: r.surfaceLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.cameraUniform, Size: uint64(unsafe.Sizeof(matUniform{}))},
			{Binding: 1, Buffer: r.modelUniform, Size: uint64(unsafe.Sizeof(matUniform{}))},
			{Binding: 2, Buffer: r.lightUniform, Size: uint64(unsafe.Sizeof(lightUniforms{}))},
		},
	})
	if err != nil {
		return fmt.Errorf("surface bind group creation failed: %w", err)
	}

	return nil
}

// buildPipelines compiles both WGSL modules and recreates the pipelines.
// Called at startup and again on hot reload.
func (r *Renderer) buildPipelines(fractalSrc, surfaceSrc string) error {
	fractalShader, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "fractal_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: fractalSrc},
	})
	if err != nil {
		return fmt.Errorf("fractal shader creation failed: %w", err)
	}
	defer fractalShader.Release()

	surfaceShader, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "surface_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: surfaceSrc},
	})
	if err != nil {
		return fmt.Errorf("surface shader creation failed: %w", err)
	}
	defer surfaceShader.Release()

	fractalPipeline, err := r.buildFractalPipeline(fractalShader)
	if err != nil {
		return err
	}
	surfacePipeline, err := r.buildSurfacePipeline(surfaceShader)
	if err != nil {
		fractalPipeline.Release()
		return err
	}

	if r.fractalPipeline != nil {
		r.fractalPipeline.Release()
	}
	if r.surfacePipeline != nil {
		r.surfacePipeline.Release()
	}
	r.fractalPipeline = fractalPipeline
	r.surfacePipeline = surfacePipeline

	return nil
}

func (r *Renderer) buildFractalPipeline(shader *wgpu.ShaderModule) (*wgpu.RenderPipeline, error) {
	layout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "fractal_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.fractalLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("fractal pipeline layout creation failed: %w", err)
	}
	defer layout.Release()

	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "fractal_pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(mesh.QuadVertex{})),
				StepMode:    wgpu.VertexStepMode_Vertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormat_Float32x2, Offset: 0, ShaderLocation: 0},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.swapChainFormat,
				Blend:     &wgpu.BlendState_Replace,
				WriteMask: wgpu.ColorWriteMask_All,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopology_TriangleStrip,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fractal pipeline creation failed: %w", err)
	}
	return pipeline, nil
}

func (r *Renderer) buildSurfacePipeline(shader *wgpu.ShaderModule) (*wgpu.RenderPipeline, error) {
	layout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "surface_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.surfaceLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("surface pipeline layout creation failed: %w", err)
	}
	defer layout.Release()

	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "surface_pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(mesh.Vertex{})),
				StepMode:    wgpu.VertexStepMode_Vertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormat_Float32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormat_Float32x3, Offset: 12, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.swapChainFormat,
				Blend:     &wgpu.BlendState_Replace,
				WriteMask: wgpu.ColorWriteMask_All,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopology_TriangleList,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormat_Depth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunction_Less,
			StencilFront: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunction_Always,
				FailOp:      wgpu.StencilOperation_Keep,
				DepthFailOp: wgpu.StencilOperation_Keep,
				PassOp:      wgpu.StencilOperation_Keep,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunction_Always,
				FailOp:      wgpu.StencilOperation_Keep,
				DepthFailOp: wgpu.StencilOperation_Keep,
				PassOp:      wgpu.StencilOperation_Keep,
			},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("surface pipeline creation failed: %w", err)
	}
	return pipeline, nil
}

// RebuildPipelines recompiles both pipelines from new WGSL sources, keeping
// the old ones on failure.
func (r *Renderer) RebuildPipelines(fractalSrc, surfaceSrc string) error {
	if err := r.buildPipelines(fractalSrc, surfaceSrc); err != nil {
		return err
	}
	fmt.Println("Shader pipelines rebuilt")
	return nil
}

func (r *Renderer) createDepthView() error {
	if r.depthView != nil {
		r.depthView.Release()
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
	}

	var err error
	r.depthTexture, err = r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "depth_texture",
		Size: wgpu.Extent3D{
			Width:              r.width,
			Height:             r.height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension_2D,
		Format:        wgpu.TextureFormat_Depth32Float,
		Usage:         wgpu.TextureUsage_RenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("depth texture creation failed: %w", err)
	}

	r.depthView, err = r.depthTexture.CreateView(&wgpu.TextureViewDescriptor{
		Format:          wgpu.TextureFormat_Depth32Float,
		Dimension:       wgpu.TextureViewDimension_2D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspect_All,
	})
	if err != nil {
		return fmt.Errorf("depth view creation failed: %w", err)
	}

	return nil
}

// RenderFractal draws one fractal frame with the given view uniforms.
func (r *Renderer) RenderFractal(view shading.FractalView) error {
	r.queue.WriteBuffer(r.fractalUniform, 0, wgpu.ToBytes([]fractalUniforms{newFractalUniforms(view)}))

	frame, err := r.swapChain.GetCurrentTextureView()
	if err != nil {
		return err
	}
	defer frame.Release()

	encoder, err := r.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{})
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       frame,
			LoadOp:     wgpu.LoadOp_Clear,
			StoreOp:    wgpu.StoreOp_Store,
			ClearValue: wgpu.Color{A: 1.0},
		}},
	})
	pass.SetPipeline(r.fractalPipeline)
	pass.SetVertexBuffer(0, r.quadBuffer, 0, wgpu.WholeSize)
	pass.SetBindGroup(0, r.fractalGroup, nil)
	pass.Draw(uint32(len(mesh.Quad)), 1, 0, 0)
	pass.End()

	return r.submit(encoder)
}

// RenderSurface draws one lit-cube frame with the given transforms and
// light.
func (r *Renderer) RenderSurface(viewProj, model shading.Mat4, light shading.DirectionalLight) error {
	r.queue.WriteBuffer(r.cameraUniform, 0, wgpu.ToBytes([]matUniform{matUniform(viewProj)}))
	r.queue.WriteBuffer(r.modelUniform, 0, wgpu.ToBytes([]matUniform{matUniform(model)}))
	r.queue.WriteBuffer(r.lightUniform, 0, wgpu.ToBytes([]lightUniforms{newLightUniforms(light)}))

	frame, err := r.swapChain.GetCurrentTextureView()
	if err != nil {
		return err
	}
	defer frame.Release()

	encoder, err := r.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{})
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       frame,
			LoadOp:     wgpu.LoadOp_Clear,
			StoreOp:    wgpu.StoreOp_Store,
			ClearValue: wgpu.Color{R: 1.0, A: 1.0},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOp_Clear,
			DepthStoreOp:    wgpu.StoreOp_Store,
			DepthClearValue: 1.0,
		},
	})
	pass.SetPipeline(r.surfacePipeline)
	pass.SetVertexBuffer(0, r.cubeVertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.cubeIndexBuffer, wgpu.IndexFormat_Uint16, 0, wgpu.WholeSize)
	pass.SetBindGroup(0, r.surfaceGroup, nil)
	pass.DrawIndexed(uint32(len(mesh.CubeIndices)), 1, 0, 0, 0)
	pass.End()

	return r.submit(encoder)
}

func (r *Renderer) submit(encoder *wgpu.CommandEncoder) error {
	cmdBuffer, err := encoder.Finish(&wgpu.CommandBufferDescriptor{})
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()

	r.queue.Submit(cmdBuffer)
	r.swapChain.Present()
	return nil
}

// Resize handles window resize
func (r *Renderer) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	r.width = width
	r.height = height

	if r.swapChain != nil {
		r.swapChain.Release()
	}
	var err error
	r.swapChain, err = r.device.CreateSwapChain(r.surface, &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      r.swapChainFormat,
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentMode_Fifo,
	})
	if err != nil {
		fmt.Printf("Swap chain recreation failed: %v\n", err)
		return
	}

	if err := r.createDepthView(); err != nil {
		fmt.Printf("Depth view recreation failed: %v\n", err)
	}
}

// Release frees all GPU resources
func (r *Renderer) Release() {
	if r.fractalPipeline != nil {
		r.fractalPipeline.Release()
	}
	if r.surfacePipeline != nil {
		r.surfacePipeline.Release()
	}
	if r.fractalGroup != nil {
		r.fractalGroup.Release()
	}
	if r.surfaceGroup != nil {
		r.surfaceGroup.Release()
	}
	if r.fractalLayout != nil {
		r.fractalLayout.Release()
	}
	if r.surfaceLayout != nil {
		r.surfaceLayout.Release()
	}
	if r.fractalUniform != nil {
		r.fractalUniform.Release()
	}
	if r.cameraUniform != nil {
		r.cameraUniform.Release()
	}
	if r.modelUniform != nil {
		r.modelUniform.Release()
	}
	if r.lightUniform != nil {
		r.lightUniform.Release()
	}
	if r.quadBuffer != nil {
		r.quadBuffer.Release()
	}
	if r.cubeVertexBuffer != nil {
		r.cubeVertexBuffer.Release()
	}
	if r.cubeIndexBuffer != nil {
		r.cubeIndexBuffer.Release()
	}
	if r.depthView != nil {
		r.depthView.Release()
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
	}
	if r.swapChain != nil {
		r.swapChain.Release()
	}
}
