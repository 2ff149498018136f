package app

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"shaderview/internal/camera"
	"shaderview/internal/config"
	"shaderview/internal/preview"
	"shaderview/internal/renderer"
	"shaderview/internal/shaderstore"
	"shaderview/pkg/shading"
)

const (
	PreviewPort = 8793

	zoomInFactor  = 1.25
	zoomOutFactor = 0.8

	modelSpinSpeed = 0.5
)

type App struct {
	window   *glfw.Window
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	renderer *renderer.Renderer
	plane    *camera.PlaneCamera
	orbit    *camera.OrbitCamera

	shaders *shaderstore.Store
	reload  <-chan string
	preview *preview.Server

	startTime time.Time

	width, height int
}

func New() (*App, error) {
	runtime.LockOSThread()

	cfg := config.Get()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("GLFW init failed: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, "Shader Viewer", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window creation failed: %w", err)
	}

	app := &App{
		window:    window,
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
		startTime: time.Now(),
	}

	if err := app.initWebGPU(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}

	app.plane = camera.NewPlaneCamera(cfg.Rendering.CenterX, cfg.Rendering.CenterY,
		cfg.Rendering.Zoom, cfg.Window.Width, cfg.Window.Height)
	app.orbit = camera.NewOrbitCamera()

	app.shaders = shaderstore.New(map[string]string{
		shaderstore.FractalFile: renderer.FractalWGSL,
		shaderstore.SurfaceFile: renderer.SurfaceWGSL,
	}, cfg.Rendering.ShaderDir)

	app.renderer, err = renderer.NewRenderer(app.adapter, app.device, app.queue, app.surface,
		uint32(cfg.Window.Width), uint32(cfg.Window.Height),
		app.shaders.Source(shaderstore.FractalFile), app.shaders.Source(shaderstore.SurfaceFile))
	if err != nil {
		return nil, fmt.Errorf("renderer creation failed: %w", err)
	}

	if cfg.Features.HotReload && cfg.Rendering.ShaderDir != "" {
		app.reload, err = app.shaders.Watch()
		if err != nil {
			fmt.Printf("Shader watch disabled: %v\n", err)
		}
	}

	if cfg.Features.PreviewServer {
		app.preview = preview.NewServer(PreviewPort)
		go func() {
			if err := app.preview.Start(); err != nil {
				fmt.Printf("Preview server stopped: %v\n", err)
			}
		}()
	}

	app.setupCallbacks()

	return app, nil
}

func (app *App) initWebGPU() error {
	app.instance = wgpu.CreateInstance(nil)
	if app.instance == nil {
		return fmt.Errorf("failed to create WebGPU instance")
	}

	app.surface = CreateSurface(app.instance, app.window)
	if app.surface == nil {
		return fmt.Errorf("surface creation failed")
	}

	var err error
	app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    app.surface,
		PowerPreference:      wgpu.PowerPreference_HighPerformance,
		ForceFallbackAdapter: false,
	})
	if err != nil {
		// Try without surface constraint
		fmt.Println("Trying adapter without surface constraint...")
		app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
			PowerPreference: wgpu.PowerPreference_HighPerformance,
		})
		if err != nil {
			return fmt.Errorf("adapter request failed: %w", err)
		}
	}

	props := app.adapter.GetProperties()
	fmt.Printf("GPU: %s (%s)\n", props.Name, props.DriverDescription)

	app.device, err = app.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "ShaderViewDevice",
	})
	if err != nil {
		return fmt.Errorf("device request failed: %w", err)
	}

	app.queue = app.device.GetQueue()
	return nil
}

func (app *App) setupCallbacks() {
	app.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if width == 0 || height == 0 {
			return
		}
		app.width = width
		app.height = height
		app.plane.SetViewport(width, height)
		app.renderer.Resize(uint32(width), uint32(height))
	})

	app.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := w.GetCursorPos()
		if action == glfw.Press {
			if app.fractalActive() {
				app.plane.StartDrag(x, y)
			} else {
				app.orbit.StartDrag(x, y)
			}
		} else {
			app.plane.EndDrag()
			app.orbit.EndDrag()
		}
	})

	app.window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if app.plane.IsDragging() {
			app.plane.Drag(x, y)
		}
		if app.orbit.IsDragging() {
			app.orbit.Drag(x, y)
		}
	})

	app.window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		if !app.fractalActive() {
			return
		}
		x, y := w.GetCursorPos()
		if yoff > 0 {
			app.plane.ZoomAtPoint(zoomInFactor, x, y)
		} else if yoff < 0 {
			app.plane.ZoomAtPoint(zoomOutFactor, x, y)
		}
	})

	app.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyTab:
			app.togglePipeline()
		case glfw.KeyR:
			app.rebuildPipelines()
		case glfw.KeySpace:
			app.plane.ZoomBy(zoomInFactor)
		case glfw.KeyLeftShift, glfw.KeyRightShift:
			app.plane.ZoomBy(zoomOutFactor)
		}
	})
}

func (app *App) fractalActive() bool {
	return config.GetPipeline() == config.PipelineFractal
}

func (app *App) togglePipeline() {
	if app.fractalActive() {
		config.SetPipeline(config.PipelineSurface)
	} else {
		config.SetPipeline(config.PipelineFractal)
	}
}

func (app *App) rebuildPipelines() {
	err := app.renderer.RebuildPipelines(
		app.shaders.Source(shaderstore.FractalFile),
		app.shaders.Source(shaderstore.SurfaceFile))
	if err != nil {
		fmt.Printf("Pipeline rebuild failed, keeping previous pipelines: %v\n", err)
	}
}

// drainReload applies pending hot-reload notifications. Pipeline rebuilds
// must happen on the render thread, so the watcher goroutine only queues
// shader names.
func (app *App) drainReload() {
	if app.reload == nil {
		return
	}
	rebuilt := false
	for {
		select {
		case name := <-app.reload:
			fmt.Printf("Shader changed: %s\n", name)
			rebuilt = true
		default:
			if rebuilt {
				app.rebuildPipelines()
			}
			return
		}
	}
}

func (app *App) renderFrame() error {
	cfg := config.Get()

	elapsed := float32(0)
	if cfg.Features.Animate {
		elapsed = float32(time.Since(app.startTime).Seconds())
	}

	if app.fractalActive() {
		return app.renderer.RenderFractal(app.plane.View(elapsed))
	}

	aspect := float32(app.width) / float32(app.height)
	model := shading.Identity()
	if cfg.Features.Animate {
		model = shading.RotateY(elapsed * modelSpinSpeed)
	}
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
	return app.renderer.RenderSurface(app.orbit.ViewProj(aspect), model, light)
}

func (app *App) Run() error {
	lastTime := time.Now()
	frames := 0

	for !app.window.ShouldClose() {
		glfw.PollEvents()
		app.drainReload()

		if err := app.renderFrame(); err != nil {
			fmt.Printf("Render error: %v\n", err)
		}

		frames++
		if time.Since(lastTime) >= time.Second {
			app.window.SetTitle(fmt.Sprintf("Shader Viewer - %s | Zoom: %.3g | FPS: %d",
				config.GetPipeline(), app.plane.Zoom, frames))
			frames = 0
			lastTime = time.Now()
		}
	}

	return nil
}

func (app *App) Cleanup() {
	if app.preview != nil {
		app.preview.Stop()
	}
	if app.shaders != nil {
		app.shaders.Close()
	}
	if app.renderer != nil {
		app.renderer.Release()
	}
	if app.queue != nil {
		app.queue.Release()
	}
	if app.device != nil {
		app.device.Release()
	}
	if app.adapter != nil {
		app.adapter.Release()
	}
	if app.surface != nil {
		app.surface.Release()
	}
	if app.instance != nil {
		app.instance.Release()
	}
	if app.window != nil {
		app.window.Destroy()
	}
	glfw.Terminate()
}
