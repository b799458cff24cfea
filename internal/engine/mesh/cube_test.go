package mesh

import (
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
	"github.com/Faultbox/cubeview/internal/engine/gpu/gputest"
	"github.com/Faultbox/cubeview/internal/engine/shader"
	"github.com/Faultbox/cubeview/pkg/math"
)

func TestCubeGeometry(t *testing.T) {
	verts := Vertices()
	idx := Indices()

	if got := len(verts) / floatsPerVertex; got != 24 {
		t.Fatalf("expected 24 vertices, got %d", got)
	}
	if len(idx) != 36 {
		t.Fatalf("expected 36 indices, got %d", len(idx))
	}
	for i, v := range idx {
		if v >= 24 {
			t.Errorf("index %d out of range: %d", i, v)
		}
	}

	vertex := func(i uint32) (pos, normal math.Vec3) {
		o := int(i) * floatsPerVertex
		pos = math.Vec3{X: verts[o], Y: verts[o+1], Z: verts[o+2]}
		normal = math.Vec3{X: verts[o+3], Y: verts[o+4], Z: verts[o+5]}
		return pos, normal
	}

	// Every triangle winds counter-clockwise seen from outside.
	for tri := 0; tri < len(idx); tri += 3 {
		a, n := vertex(idx[tri])
		b, _ := vertex(idx[tri+1])
		c, _ := vertex(idx[tri+2])
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Dot(n) <= 0 {
			t.Errorf("triangle %d winds against its normal %v", tri/3, n)
		}
	}
}

func TestCubeFaceColors(t *testing.T) {
	verts := Vertices()
	want := [][3]float32{ColorFront, ColorBack, ColorTop, ColorBottom, ColorRight, ColorLeft}

	for f, color := range want {
		for corner := 0; corner < 4; corner++ {
			o := (f*4+corner)*floatsPerVertex + 6
			got := [3]float32{verts[o], verts[o+1], verts[o+2]}
			if got != color {
				t.Errorf("face %d corner %d colour = %v, want %v", f, corner, got, color)
			}
		}
	}
}

func TestVerticesReturnsCopy(t *testing.T) {
	v := Vertices()
	v[0] = 42
	if Vertices()[0] == 42 {
		t.Error("Vertices should not expose the shared slice")
	}
}

func TestNewCubeUploads(t *testing.T) {
	ctx, fake := gputest.NewContext(t, 800, 600)

	cube, err := NewCube(ctx)
	if err != nil {
		t.Fatalf("NewCube: %v", err)
	}
	defer cube.Close()

	if cube.IndexCount() != 36 {
		t.Errorf("index count = %d, want 36", cube.IndexCount())
	}

	vao := fake.VertexArray(cube.vao)
	if vao == nil {
		t.Fatal("vertex array not created")
	}
	if vao.ElementBuffer != cube.ebo {
		t.Errorf("element buffer %d not bound to the VAO", cube.ebo)
	}
	wantAttribs := map[uint32]gputest.Attrib{
		0: {Size: 3, Stride: 36, Offset: 0, Enabled: true},
		1: {Size: 3, Stride: 36, Offset: 12, Enabled: true},
		2: {Size: 3, Stride: 36, Offset: 24, Enabled: true},
	}
	for index, want := range wantAttribs {
		if got := vao.Attribs[index]; got != want {
			t.Errorf("attrib %d = %+v, want %+v", index, got, want)
		}
	}

	if got := len(fake.Buffer(cube.vbo).Floats); got != 24*floatsPerVertex {
		t.Errorf("vertex buffer holds %d floats", got)
	}
	if got := len(fake.Buffer(cube.ebo).Uints); got != 36 {
		t.Errorf("index buffer holds %d indices", got)
	}
}

func TestCubeRender(t *testing.T) {
	ctx, fake := gputest.NewContext(t, 800, 600)

	cube, err := NewCube(ctx)
	if err != nil {
		t.Fatalf("NewCube: %v", err)
	}
	defer cube.Close()

	model := math.RotateY(0.5)
	cube.Render(math.Identity(), math.Translate(0, 0, -3), model)

	if len(fake.Draws) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(fake.Draws))
	}
	draw := fake.Draws[0]
	if draw.Mode != gpu.Triangles || draw.Count != 36 || draw.IndexType != gpu.UnsignedInt {
		t.Errorf("unexpected draw %+v", draw)
	}
	if draw.Program != cube.Program() || draw.VertexArray != cube.vao {
		t.Errorf("draw used program %d vao %d", draw.Program, draw.VertexArray)
	}

	got, ok := fake.UniformMatrix(cube.Program(), "u_model")
	if !ok || math.Mat4(got) != model {
		t.Errorf("u_model = %v, want %v", got, model)
	}
	if _, ok := fake.UniformMatrix(cube.Program(), "u_projection"); !ok {
		t.Error("u_projection not uploaded")
	}
	if _, ok := fake.UniformMatrix(cube.Program(), "u_view"); !ok {
		t.Error("u_view not uploaded")
	}
}

func TestCubeCloseReleasesEverything(t *testing.T) {
	ctx, fake := gputest.NewContext(t, 1, 1)

	cube, err := NewCube(ctx)
	if err != nil {
		t.Fatalf("NewCube: %v", err)
	}
	cube.Close()
	cube.Close()

	if n := fake.LiveObjects(); n != 0 {
		t.Errorf("expected no live GPU objects after Close, got %d", n)
	}
}

func TestNewCubeShaderFailure(t *testing.T) {
	ctx, fake := gputest.NewContext(t, 1, 1)
	fake.CompileError = func(kind gpu.Enum, _ string) string {
		if kind == gpu.FragmentShader {
			return "0:3(1): error: syntax error"
		}
		return ""
	}

	cube, err := NewCube(ctx)
	if err == nil {
		cube.Close()
		t.Fatal("expected an error")
	}

	var ce *shader.CompileError
	if !errors.As(err, &ce) || ce.Stage != shader.StageFragment {
		t.Errorf("expected fragment CompileError, got %v", err)
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("error should carry the driver log: %v", err)
	}
	if n := fake.LiveObjects(); n != 0 {
		t.Errorf("expected no live GPU objects, got %d", n)
	}
}
