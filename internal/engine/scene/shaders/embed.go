// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LitVertexShader transforms fixture meshes into world and clip space.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader shades fixtures with ambient, sun and lamp light plus fog.
//
//go:embed lit.frag
var LitFragmentShader string

// PointsVertexShader sizes star points by distance.
//
//go:embed points.vert
var PointsVertexShader string

// PointsFragmentShader draws round, fogged star points.
//
//go:embed points.frag
var PointsFragmentShader string
