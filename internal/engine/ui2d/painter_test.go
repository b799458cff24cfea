package ui2d

import (
	"errors"
	"image"
	"testing"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
	"github.com/Faultbox/cubeview/internal/engine/gpu/gputest"
	"github.com/Faultbox/cubeview/pkg/math"
)

func newTestPainter(t *testing.T) (*Painter, *gputest.GL) {
	t.Helper()
	ctx, fake := gputest.NewContext(t, 800, 600)
	p, err := NewPainter(ctx)
	if err != nil {
		t.Fatalf("NewPainter: %v", err)
	}
	t.Cleanup(p.Close)
	return p, fake
}

func rectPrimitive(clip math.Rect, f *Font) []ClippedPrimitive {
	return Tessellate([]ClippedShape{{Clip: clip, Shape: RectShape{Rect: clip, Color: ColorWhite}}}, f)
}

func TestPainterSkipsMeshesWithoutTexture(t *testing.T) {
	p, fake := newTestPainter(t)
	f := NewFont()

	stats := p.Paint(rectPrimitive(math.Rect{W: 100, H: 50}, f), 800, 600)
	if stats.Skipped != 1 || stats.Meshes != 0 {
		t.Errorf("stats = %+v, want one skipped mesh", stats)
	}
	if len(fake.Draws) != 0 {
		t.Errorf("expected no draws, got %d", len(fake.Draws))
	}
}

func TestPainterDrawsWithScissor(t *testing.T) {
	p, fake := newTestPainter(t)
	f := NewFont()
	if err := p.SetTexture(FontTexture, ImageDelta{Image: f.Atlas()}); err != nil {
		t.Fatalf("SetTexture: %v", err)
	}

	clip := math.Rect{X: 10, Y: 20, W: 100, H: 50}
	stats := p.Paint(rectPrimitive(clip, f), 800, 600)
	if stats.Meshes != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	draw := fake.Draws[0]
	if !draw.Blend || !draw.Scissor || draw.DepthTest || draw.CullFace {
		t.Errorf("unexpected 2D state %+v", draw)
	}
	if draw.Count != 6 {
		t.Errorf("drew %d indices, want 6", draw.Count)
	}
	if fake.Enabled(gpu.ScissorTest) || fake.Enabled(gpu.Blend) {
		t.Error("scissor and blend should be off after painting")
	}
}

func TestPainterScissorFlipsY(t *testing.T) {
	p, fake := newTestPainter(t)
	f := NewFont()
	if err := p.SetTexture(FontTexture, ImageDelta{Image: f.Atlas()}); err != nil {
		t.Fatalf("SetTexture: %v", err)
	}

	clip := math.Rect{X: 10, Y: 20, W: 100, H: 50}
	p.Paint(append(rectPrimitive(clip, f), ClippedPrimitive{
		Clip: clip,
		Primitive: CallbackShape{Rect: clip, Callback: func(CallbackInfo) {
			fake.Clear(gpu.DepthBufferBit)
		}},
	}), 800, 600)

	// The callback's clear records the scissor box left by the mesh draw.
	if got := fake.Clears[0].ScissorBox; got != [4]int32{10, 530, 100, 50} {
		t.Errorf("scissor box = %v, want [10 530 100 50]", got)
	}
}

func TestPainterRunsCallbacksInOrder(t *testing.T) {
	p, fake := newTestPainter(t)
	f := NewFont()
	if err := p.SetTexture(FontTexture, ImageDelta{Image: f.Atlas()}); err != nil {
		t.Fatalf("SetTexture: %v", err)
	}

	area := math.Rect{X: 0, Y: 30, W: 800, H: 540}
	var info CallbackInfo
	var drawsBefore int
	var scissorDuring bool

	prims := rectPrimitive(area, f)
	prims = append(prims, ClippedPrimitive{Clip: area, Primitive: CallbackShape{
		Rect: area,
		Callback: func(ci CallbackInfo) {
			info = ci
			drawsBefore = len(fake.Draws)
			scissorDuring = fake.Enabled(gpu.ScissorTest)
			fake.Enable(gpu.DepthTest)
			fake.UseProgram(0)
		},
	}})
	prims = append(prims, rectPrimitive(area, f)...)

	stats := p.Paint(prims, 800, 600)
	if stats.Callbacks != 1 || stats.Meshes != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if drawsBefore != 1 {
		t.Errorf("callback ran after %d draws, want 1", drawsBefore)
	}
	if scissorDuring {
		t.Error("scissor should be disabled during callbacks")
	}
	if info.Rect != area || info.ScreenWidth != 800 || info.ScreenHeight != 600 {
		t.Errorf("callback info = %+v", info)
	}

	after := fake.Draws[1]
	if after.DepthTest || after.Program != p.program {
		t.Error("painter state should be re-established after a callback")
	}
}

func TestPainterTextures(t *testing.T) {
	p, fake := newTestPainter(t)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := p.SetTexture(7, ImageDelta{Image: img}); err != nil {
		t.Fatalf("SetTexture: %v", err)
	}
	if !p.HasTexture(7) || fake.LiveTextures() != 1 {
		t.Fatal("texture not created")
	}

	// Replacing keeps the same GPU object.
	if err := p.SetTexture(7, ImageDelta{Image: image.NewRGBA(image.Rect(0, 0, 8, 8))}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if fake.LiveTextures() != 1 {
		t.Errorf("expected 1 live texture, got %d", fake.LiveTextures())
	}

	patch := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range patch.Pix {
		patch.Pix[i] = 0xff
	}
	if err := p.SetTexture(7, ImageDelta{Image: patch, Pos: &image.Point{X: 6, Y: 6}}); err != nil {
		t.Fatalf("partial update: %v", err)
	}
	obj := fake.TextureObject(p.textures[7].tex)
	if px := obj.Pixels[(7*8+7)*4]; px != 0xff {
		t.Errorf("partial update not applied, got %x", px)
	}

	if err := p.SetTexture(7, ImageDelta{Image: patch, Pos: &image.Point{X: 7, Y: 7}}); err == nil {
		t.Error("expected out-of-bounds partial update to fail")
	}
	if err := p.SetTexture(9, ImageDelta{Image: patch, Pos: &image.Point{}}); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("partial update of unknown texture: %v", err)
	}
	if err := p.SetTexture(9, ImageDelta{}); err == nil {
		t.Error("expected error for missing image")
	}

	if err := p.FreeTexture(7); err != nil {
		t.Fatalf("FreeTexture: %v", err)
	}
	if err := p.FreeTexture(7); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("double free: %v", err)
	}
	if fake.LiveTextures() != 0 {
		t.Errorf("expected no live textures, got %d", fake.LiveTextures())
	}
}

func TestPainterApplyTexturesContinuesOnError(t *testing.T) {
	p, _ := newTestPainter(t)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	errs := p.ApplyTextures(TexturesDelta{
		Set: []TextureUpdate{
			{ID: 3, Delta: ImageDelta{Image: img, Pos: &image.Point{}}},
			{ID: 4, Delta: ImageDelta{Image: img}},
		},
		Free: []TextureID{5},
	})

	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", errs)
	}
	if !p.HasTexture(4) {
		t.Error("valid upload should still be applied")
	}
}

func TestPainterCloseReleasesEverything(t *testing.T) {
	ctx, fake := gputest.NewContext(t, 1, 1)
	p, err := NewPainter(ctx)
	if err != nil {
		t.Fatalf("NewPainter: %v", err)
	}
	if err := p.SetTexture(FontTexture, ImageDelta{Image: NewFont().Atlas()}); err != nil {
		t.Fatalf("SetTexture: %v", err)
	}

	p.Close()
	if n := fake.LiveObjects(); n != 0 {
		t.Errorf("expected no live GPU objects, got %d", n)
	}
}

func TestTightPixelsSubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Pix[img.PixOffset(1, 1)] = 9
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)

	px := tightPixels(sub)
	if len(px) != 2*2*4 {
		t.Fatalf("len = %d, want 16", len(px))
	}
	if px[0] != 9 {
		t.Errorf("first pixel = %d, want 9", px[0])
	}
}
