package shaderstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testDefaults() map[string]string {
	return map[string]string{
		FractalFile: "// default fractal",
		SurfaceFile: "// default surface",
	}
}

func TestSourceFallsBackToDefault(t *testing.T) {
	s := New(testDefaults(), "")
	defer s.Close()

	if got := s.Source(FractalFile); got != "// default fractal" {
		t.Errorf("Source(%q) = %q, want embedded default", FractalFile, got)
	}
	if got := s.Source("unknown.wgsl"); got != "" {
		t.Errorf("Source of unknown shader = %q, want empty", got)
	}
}

func TestSourceUsesDiskOverride(t *testing.T) {
	dir := t.TempDir()
	override := "// from disk"
	if err := os.WriteFile(filepath.Join(dir, FractalFile), []byte(override), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := New(testDefaults(), dir)
	defer s.Close()

	if got := s.Source(FractalFile); got != override {
		t.Errorf("Source(%q) = %q, want disk override", FractalFile, got)
	}
	// A shader with no override file keeps its default.
	if got := s.Source(SurfaceFile); got != "// default surface" {
		t.Errorf("Source(%q) = %q, want embedded default", SurfaceFile, got)
	}
}

func TestWatchRequiresDirectory(t *testing.T) {
	s := New(testDefaults(), "")
	defer s.Close()

	if _, err := s.Watch(); err == nil {
		t.Error("Watch without a directory succeeded, want error")
	}
}

func TestWatchPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	s := New(testDefaults(), dir)
	defer s.Close()

	changed, err := s.Watch()
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	updated := "// updated fractal"
	if err := os.WriteFile(filepath.Join(dir, FractalFile), []byte(updated), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case name := <-changed:
			if name != FractalFile {
				// Editors emit events for other files too; keep waiting.
				continue
			}
			if got := s.Source(FractalFile); got != updated {
				t.Errorf("Source after change = %q, want %q", got, updated)
			}
			return
		case <-deadline:
			t.Fatal("no change notification within 5s")
		}
	}
}

func TestWatchIgnoresUnknownFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(testDefaults(), dir)
	defer s.Close()

	changed, err := s.Watch()
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-changed:
		t.Errorf("unexpected notification for %q", name)
	case <-time.After(500 * time.Millisecond):
	}
}
