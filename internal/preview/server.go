// Package preview serves CPU-rendered frames over HTTP, useful for
// checking shading output on machines without a GPU surface.
package preview

import (
	"fmt"
	"image/png"
	"net/http"
	"strconv"

	"shaderview/internal/cpurender"
	"shaderview/pkg/shading"
)

const maxDimension = 4096

// Server provides HTTP endpoints for headless rendering
type Server struct {
	port   int
	server *http.Server
}

// NewServer creates a new preview server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// Start starts the preview server
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	fmt.Printf("Preview server starting on port %d\n", s.port)
	return s.server.ListenAndServe()
}

// Stop stops the preview server
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// handleRender serves a fractal frame as PNG:
// /render?w=800&h=400&zoom=1&cx=-0.5&cy=0&time=0
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	width, err := intParam(q.Get("w"), 800)
	if err != nil || width <= 0 || width > maxDimension {
		http.Error(w, "Invalid w", http.StatusBadRequest)
		return
	}
	height, err := intParam(q.Get("h"), 400)
	if err != nil || height <= 0 || height > maxDimension {
		http.Error(w, "Invalid h", http.StatusBadRequest)
		return
	}
	zoom, err := floatParam(q.Get("zoom"), 1)
	if err != nil || zoom <= 0 {
		http.Error(w, "Invalid zoom", http.StatusBadRequest)
		return
	}
	cx, err := floatParam(q.Get("cx"), -0.5)
	if err != nil {
		http.Error(w, "Invalid cx", http.StatusBadRequest)
		return
	}
	cy, err := floatParam(q.Get("cy"), 0)
	if err != nil {
		http.Error(w, "Invalid cy", http.StatusBadRequest)
		return
	}
	t, err := floatParam(q.Get("time"), 0)
	if err != nil {
		http.Error(w, "Invalid time", http.StatusBadRequest)
		return
	}

	view := shading.FractalView{
		Time:   float32(t),
		Center: shading.Vec2{X: float32(cx), Y: float32(cy)},
		Zoom:   float32(zoom),
	}
	img := cpurender.Fractal(view, width, height)

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		fmt.Printf("Preview encode error: %v\n", err)
	}
}

// handleHealth provides a health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func floatParam(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}
