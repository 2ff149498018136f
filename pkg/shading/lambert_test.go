package shading

import (
	"testing"
)

func TestDiffuseAlignment(t *testing.T) {
	light := DirectionalLight{Dir: Vec3{0, -1, 0}, Color: Vec3{1, 1, 1}}
	tests := []struct {
		name   string
		normal Vec3
		want   float32
	}{
		{"facing the light", Vec3{0, 1, 0}, 1},
		{"perpendicular", Vec3{1, 0, 0}, 0},
		{"facing away", Vec3{0, -1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Diffuse(tt.normal, light); got != tt.want {
				t.Errorf("Diffuse(%v) = %v, want %v", tt.normal, got, tt.want)
			}
		})
	}
}

func TestDiffuseRenormalizesInterpolatedNormal(t *testing.T) {
	// A normal shortened by interpolation must still yield the full term.
	light := DirectionalLight{Dir: Vec3{0, -1, 0}}
	if got := Diffuse(Vec3{0, 0.4, 0}, light); absDiff(got, 1) > 1e-6 {
		t.Errorf("Diffuse of shortened aligned normal = %v, want 1", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	vectors := []Vec3{{1, 0, 0}, {1, 2, 3}, {-0.5, 0.25, 4}, {0, 0, 1e-3}}
	for _, v := range vectors {
		once := v.Normalize()
		twice := once.Normalize()
		if absDiff(once.X, twice.X) > 1e-6 ||
			absDiff(once.Y, twice.Y) > 1e-6 ||
			absDiff(once.Z, twice.Z) > 1e-6 {
			t.Errorf("normalize not idempotent for %v: %v vs %v", v, once, twice)
		}
	}
}

func TestLitVertexIdentity(t *testing.T) {
	// With identity camera and model transforms the position passes through
	// unchanged and a unit normal survives re-normalization.
	pos := Vec3{0.5, -0.25, 1}
	normal := Vec3{0, 0, 1}
	p := LitVertex(Identity(), Identity(), pos, normal)

	if p.Clip != (Vec4{pos.X, pos.Y, pos.Z, 1}) {
		t.Errorf("clip = %v, want %v extended with w=1", p.Clip, pos)
	}
	if p.World != pos {
		t.Errorf("world = %v, want %v", p.World, pos)
	}
	if absDiff(p.Normal.X, normal.X) > 1e-6 ||
		absDiff(p.Normal.Y, normal.Y) > 1e-6 ||
		absDiff(p.Normal.Z, normal.Z) > 1e-6 {
		t.Errorf("normal = %v, want %v", p.Normal, normal)
	}
}

func TestLitVertexNormalIgnoresTranslation(t *testing.T) {
	model := Translate(Vec3{10, -3, 7})
	p := LitVertex(Identity(), model, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	if absDiff(p.Normal.Y, 1) > 1e-6 || absDiff(p.Normal.X, 0) > 1e-6 {
		t.Errorf("translated model changed the normal: %v", p.Normal)
	}
	if p.World != (Vec3{10, -3, 7}) {
		t.Errorf("world = %v, want translation applied", p.World)
	}
}

func TestLitVertexNormalCancelsScale(t *testing.T) {
	// Non-uniform scale stretches the transformed normal; re-normalization
	// must bring it back to unit length.
	scale := Mat4{
		3, 0, 0, 0,
		0, 0.5, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 1,
	}
	p := LitVertex(Identity(), scale, Vec3{1, 1, 1}, Vec3{0, 1, 0})
	if absDiff(p.Normal.Length(), 1) > 1e-6 {
		t.Errorf("normal length = %v, want 1", p.Normal.Length())
	}
}

func TestLitFragment(t *testing.T) {
	light := DirectionalLight{Dir: Vec3{0, -1, 0}, Color: Vec3{0, 1, 1}}

	lit := LitFragment(SurfacePoint{Normal: Vec3{0, 1, 0}}, light)
	want := Vec4{0, Albedo.Y, Albedo.Z, 1}
	if lit != want {
		t.Errorf("front-facing fragment = %v, want %v", lit, want)
	}

	dark := LitFragment(SurfacePoint{Normal: Vec3{0, -1, 0}}, light)
	if dark != (Vec4{0, 0, 0, 1}) {
		t.Errorf("back-facing fragment = %v, want opaque black", dark)
	}
}
