// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"
	"strings"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
)

// Stage identifies where a program build failed.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageLink
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// CompileError carries the driver's info log for a failed stage.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	if e.Stage == StageLink {
		return "link: " + strings.TrimSpace(e.Log)
	}
	return fmt.Sprintf("%s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// On failure every object it created is deleted and a *CompileError is returned.
func CompileProgram(fns gpu.Functions, vertexSrc, fragmentSrc string) (gpu.Program, error) {
	vertShader, err := compileShader(fns, vertexSrc, gpu.VertexShader, StageVertex)
	if err != nil {
		return 0, err
	}
	defer fns.DeleteShader(vertShader)

	fragShader, err := compileShader(fns, fragmentSrc, gpu.FragmentShader, StageFragment)
	if err != nil {
		return 0, err
	}
	defer fns.DeleteShader(fragShader)

	program := fns.CreateProgram()
	fns.AttachShader(program, vertShader)
	fns.AttachShader(program, fragShader)
	fns.LinkProgram(program)

	if !fns.GetProgramLinkStatus(program) {
		log := fns.GetProgramInfoLog(program)
		fns.DeleteProgram(program)
		return 0, &CompileError{Stage: StageLink, Log: log}
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(fns gpu.Functions, source string, kind gpu.Enum, stage Stage) (gpu.Shader, error) {
	shader := fns.CreateShader(kind)
	fns.ShaderSource(shader, source)
	fns.CompileShader(shader)

	if !fns.GetShaderCompileStatus(shader) {
		log := fns.GetShaderInfoLog(shader)
		fns.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: log}
	}

	return shader, nil
}

// Uniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func Uniform(fns gpu.Functions, program gpu.Program, name string) gpu.Uniform {
	return fns.GetUniformLocation(program, name)
}

// MustUniform returns the uniform location for the given name.
// Panics if the uniform is not found (useful for required uniforms).
func MustUniform(fns gpu.Functions, program gpu.Program, name string) gpu.Uniform {
	loc := fns.GetUniformLocation(program, name)
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, program))
	}
	return loc
}
