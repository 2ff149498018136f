package config

import (
	"encoding/json"
	"os"
	"sync"
)

// Config holds application configuration and feature flags
type Config struct {
	// Feature flags
	Features Features `json:"features"`

	// Rendering parameters
	Rendering Rendering `json:"rendering"`

	// Window parameters
	Window Window `json:"window"`
}

// Features contains feature flags for development
type Features struct {
	// Animate advances the time uniform every frame
	Animate bool `json:"animate"`

	// HotReload rebuilds pipelines when shader files change on disk
	HotReload bool `json:"hot_reload"`

	// PreviewServer serves CPU-rendered frames over HTTP
	PreviewServer bool `json:"preview_server"`
}

// Rendering contains rendering parameters
type Rendering struct {
	// Pipeline selects the active shading pipeline: "fractal" or "surface"
	Pipeline string `json:"pipeline"`

	// CenterX, CenterY is the initial fractal-plane view center
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`

	// Zoom is the initial fractal zoom factor (> 0)
	Zoom float64 `json:"zoom"`

	// LightDir points from the light source toward the scene
	LightDir [3]float64 `json:"light_dir"`

	// LightColor is the directional light color
	LightColor [3]float64 `json:"light_color"`

	// ShaderDir optionally overrides the embedded WGSL sources
	ShaderDir string `json:"shader_dir"`
}

// Window contains window parameters
type Window struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PipelineFractal and PipelineSurface are the valid Rendering.Pipeline values.
const (
	PipelineFractal = "fractal"
	PipelineSurface = "surface"
)

var (
	instance *Config
	once     sync.Once
	mu       sync.RWMutex
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Features: Features{
			Animate:       true,
			HotReload:     true,
			PreviewServer: false,
		},
		Rendering: Rendering{
			Pipeline:   PipelineFractal,
			CenterX:    -0.5,
			CenterY:    0.0,
			Zoom:       1.0,
			LightDir:   [3]float64{-0.8, -1.0, -1.0},
			LightColor: [3]float64{0.0, 1.0, 1.0},
		},
		Window: Window{
			Width:  800,
			Height: 400,
		},
	}
}

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		// Load may have populated the instance already
		if instance != nil {
			return
		}
		instance = DefaultConfig()
		// Try to load from file
		if data, err := os.ReadFile("config.json"); err == nil {
			json.Unmarshal(data, instance)
		}
		instance.normalize()
	})
	return instance
}

// Load loads configuration from a file
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	if err := json.Unmarshal(data, instance); err != nil {
		return err
	}
	instance.normalize()
	return nil
}

// Save saves configuration to a file
func Save(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	data, err := json.MarshalIndent(instance, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// normalize clamps loaded values into valid ranges
func (c *Config) normalize() {
	if c.Rendering.Pipeline != PipelineSurface {
		c.Rendering.Pipeline = PipelineFractal
	}
	if c.Rendering.Zoom <= 0 {
		c.Rendering.Zoom = 1.0
	}
	if c.Window.Width <= 0 {
		c.Window.Width = 800
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 400
	}
}

// SetPipeline sets the active pipeline, ignoring unknown names
func SetPipeline(name string) {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}
	if name == PipelineFractal || name == PipelineSurface {
		instance.Rendering.Pipeline = name
	}
}

// GetPipeline returns the active pipeline name
func GetPipeline() string {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return PipelineFractal
	}
	return instance.Rendering.Pipeline
}
