// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// CubeVertexShader is the vertex shader for the lit cube.
//
//go:embed cube.vert
var CubeVertexShader string

// CubeFragmentShader is the fragment shader for the lit cube.
//
//go:embed cube.frag
var CubeFragmentShader string
