package shading

// Albedo is the fixed base reflectance of the lit surface.
var Albedo = Vec3{0.8, 0.8, 0.8}

// DirectionalLight describes a directional light. Dir points from the
// light source toward the scene.
type DirectionalLight struct {
	Dir   Vec3
	Color Vec3
}

// SurfacePoint is the interpolated output of the lit-surface vertex stage.
// The rasterizer interpolates these linearly across a primitive, so Normal
// is not unit length by the time it reaches the fragment stage.
type SurfacePoint struct {
	Clip   Vec4
	World  Vec3
	Normal Vec3
}

// LitVertex is the vertex stage of the lit-surface pipeline. World position
// is the model transform applied to the position; clip position is the
// camera's view-projection applied to the world position. The normal goes
// through the upper 3x3 of the model transform (w=0, no translation) and is
// re-normalized to cancel scale introduced by the linear map.
func LitVertex(viewProj, model Mat4, pos, normal Vec3) SurfacePoint {
	world := model.MulVec4(Vec4{pos.X, pos.Y, pos.Z, 1})
	return SurfacePoint{
		Clip:   viewProj.MulVec4(world),
		World:  world.XYZ(),
		Normal: model.MulVec4(Vec4{normal.X, normal.Y, normal.Z, 0}).XYZ().Normalize(),
	}
}

// Diffuse returns the clamped Lambertian term max(dot(N, L), 0) for an
// interpolated normal and a light direction. The normal is re-normalized
// here because linear interpolation does not preserve unit length.
func Diffuse(normal Vec3, light DirectionalLight) float32 {
	n := normal.Normalize()
	l := light.Dir.Scale(-1).Normalize()
	if d := n.Dot(l); d > 0 {
		return d
	}
	return 0
}

// LitFragment is the fragment stage of the lit-surface pipeline: diffuse
// Lambertian reflectance only, no ambient or specular term. Back-facing
// surfaces receive zero illumination. Alpha is always fully opaque.
func LitFragment(p SurfacePoint, light DirectionalLight) Vec4 {
	rgb := Albedo.Scale(Diffuse(p.Normal, light)).MulEach(light.Color)
	return Vec4{rgb.X, rgb.Y, rgb.Z, 1}
}
