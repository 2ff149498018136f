package preview

import (
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleRender(t *testing.T) {
	s := NewServer(0)

	req := httptest.NewRequest(http.MethodGet, "/render?w=64&h=32&zoom=2&cx=-0.5&cy=0", nil)
	rec := httptest.NewRecorder()
	s.handleRender(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("response is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Errorf("image is %dx%d, want 64x32", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestHandleRenderDefaults(t *testing.T) {
	s := NewServer(0)

	req := httptest.NewRequest(http.MethodGet, "/render?w=16&h=16", nil)
	rec := httptest.NewRecorder()
	s.handleRender(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with default view params", rec.Code)
	}
}

func TestHandleRenderBadParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"non-numeric width", "/render?w=abc"},
		{"zero width", "/render?w=0"},
		{"oversized height", "/render?h=100000"},
		{"negative zoom", "/render?zoom=-1"},
		{"non-numeric center", "/render?cx=nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(0)
			rec := httptest.NewRecorder()
			s.handleRender(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	s := NewServer(0)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body != `{"status":"ok"}` {
		t.Errorf("body = %q", body)
	}
}
