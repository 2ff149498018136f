// Package shaderstore resolves WGSL shader sources: embedded defaults,
// optional on-disk overrides, and change notifications for hot reload.
package shaderstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// File names recognized inside an override directory.
const (
	FractalFile = "fractal.wgsl"
	SurfaceFile = "surface.wgsl"
)

// Store holds shader sources and watches an override directory
type Store struct {
	dir      string
	defaults map[string]string

	mu        sync.RWMutex
	overrides map[string]string

	watcher *fsnotify.Watcher
	changed chan string
	done    chan struct{}
}

// New creates a store with the given embedded defaults. If dir is
// non-empty, files in it named after the known shaders override the
// defaults.
func New(defaults map[string]string, dir string) *Store {
	s := &Store{
		dir:       dir,
		defaults:  defaults,
		overrides: make(map[string]string),
		changed:   make(chan string, 8),
		done:      make(chan struct{}),
	}
	if dir != "" {
		for name := range defaults {
			s.loadOverride(name)
		}
	}
	return s
}

// Source returns the current source for a shader name: the on-disk
// override if one was loaded, the embedded default otherwise.
func (s *Store) Source(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if src, ok := s.overrides[name]; ok {
		return src
	}
	return s.defaults[name]
}

// loadOverride reads an override file into the store, if it exists.
func (s *Store) loadOverride(name string) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return
	}

	s.mu.Lock()
	s.overrides[name] = string(data)
	s.mu.Unlock()
}

// Watch starts watching the override directory and returns a channel that
// receives the name of each shader whose file changed. The channel send is
// non-blocking; coalescing repeated events is fine since the consumer
// re-reads the current source anyway.
func (s *Store) Watch() (<-chan string, error) {
	if s.dir == "" {
		return nil, fmt.Errorf("no shader directory configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher creation failed: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}
	s.watcher = watcher

	go func() {
		for {
			select {
			case <-s.done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				name := filepath.Base(event.Name)
				if _, known := s.defaults[name]; !known {
					continue
				}
				s.loadOverride(name)
				select {
				case s.changed <- name:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Printf("Shader watch error: %v\n", err)
			}
		}
	}()

	return s.changed, nil
}

// Close stops the watcher
func (s *Store) Close() {
	close(s.done)
	if s.watcher != nil {
		s.watcher.Close()
	}
}
