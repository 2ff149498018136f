package renderer

// FractalWGSL contains the vertex and fragment stages of the fractal
// pipeline. It must mirror pkg/shading: same escape radius, iteration cap,
// step order and color mapping, so GPU and CPU output match.
const FractalWGSL = `
struct FractalUniforms {
    time: f32,
    center: vec2<f32>,
    zoom: f32,
    resolution: vec2<f32>,
}

@group(0) @binding(0) var<uniform> view: FractalUniforms;

struct VertexInput {
    @location(0) position: vec2<f32>,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(in.position, 0.0, 1.0);
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    var uv = in.position.xy / view.resolution * 2.0 - vec2<f32>(1.0, 1.0);
    uv.x = uv.x * (view.resolution.x / view.resolution.y);
    let c = uv / view.zoom + view.center;

    var z = vec2<f32>(0.0, 0.0);
    var n: u32 = 0u;
    loop {
        if (n >= 100u) { break; }
        if (length(z) > 2.0) { break; }
        z = vec2<f32>(z.x * z.x - z.y * z.y, 2.0 * z.x * z.y) + c;
        n = n + 1u;
    }

    let factor = f32(n) / 100.0;
    let rgb = (sin(vec3<f32>(10.0, 15.0, 20.0) * factor) * 0.5 + vec3<f32>(0.5)) * factor;
    return vec4<f32>(rgb, 1.0);
}
`

// SurfaceWGSL contains the vertex and fragment stages of the lit-surface
// pipeline: model/camera transforms plus diffuse-only directional lighting.
const SurfaceWGSL = `
struct Camera {
    view_proj: mat4x4<f32>,
}

struct Model {
    transform: mat4x4<f32>,
}

struct Light {
    dir: vec3<f32>,
    color: vec3<f32>,
}

@group(0) @binding(0) var<uniform> camera: Camera;
@group(0) @binding(1) var<uniform> model: Model;
@group(0) @binding(2) var<uniform> light: Light;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
}

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) world_pos: vec3<f32>,
    @location(1) normal: vec3<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    let world = model.transform * vec4<f32>(in.position, 1.0);
    out.clip_position = camera.view_proj * world;
    out.world_pos = world.xyz;
    out.normal = normalize((model.transform * vec4<f32>(in.normal, 0.0)).xyz);
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let n = normalize(in.normal);
    let l = normalize(-light.dir);
    let diffuse = max(dot(n, l), 0.0);
    let albedo = vec3<f32>(0.8, 0.8, 0.8);
    return vec4<f32>(albedo * diffuse * light.color, 1.0);
}
`
