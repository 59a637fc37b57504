package shader

// TerrainVertex expects the terrain vertex layout: position, normal, texcoord.
const TerrainVertex = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTexCoord;

uniform mat4 uViewProj;

out vec3 vNormal;
out vec2 vTexCoord;
out float vHeight;

void main() {
    vNormal = aNormal;
    vTexCoord = aTexCoord;
    vHeight = aPosition.y;
    gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

// TerrainFragment shades by height band and a single directional light.
const TerrainFragment = `#version 410 core
in vec3 vNormal;
in vec2 vTexCoord;
in float vHeight;

uniform vec3 uLightDir;
uniform float uWaterLevel;

out vec4 fragColor;

void main() {
    vec3 low = vec3(0.36, 0.52, 0.24);
    vec3 high = vec3(0.55, 0.50, 0.42);
    vec3 water = vec3(0.20, 0.35, 0.55);
    vec3 base = mix(low, high, clamp(vHeight / 400.0, 0.0, 1.0));
    if (vHeight <= uWaterLevel) {
        base = water;
    }
    float grid = step(0.98, fract(vTexCoord.x)) + step(0.98, fract(vTexCoord.y));
    base *= 1.0 - 0.05 * clamp(grid, 0.0, 1.0);
    float diffuse = max(dot(normalize(vNormal), -normalize(uLightDir)), 0.0);
    fragColor = vec4(base * (0.35 + 0.65 * diffuse), 1.0);
}
`

// LineVertex draws colored debug lines.
const LineVertex = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aColor;

uniform mat4 uViewProj;

out vec3 vColor;

void main() {
    vColor = aColor;
    gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

// LineFragment passes the line color through.
const LineFragment = `#version 410 core
in vec3 vColor;
out vec4 fragColor;

void main() {
    fragColor = vec4(vColor, 1.0);
}
`

// PointVertex draws plants and moveables as sized points.
const PointVertex = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aColor;

uniform mat4 uViewProj;
uniform float uPointSize;

out vec3 vColor;

void main() {
    vColor = aColor;
    gl_Position = uViewProj * vec4(aPosition, 1.0);
    gl_PointSize = uPointSize / max(gl_Position.w * 0.01, 1.0);
}
`
