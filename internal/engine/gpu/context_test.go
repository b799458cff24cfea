package gpu_test

import (
	"testing"

	"github.com/Faultbox/cubeview/internal/engine/gpu"
	"github.com/Faultbox/cubeview/internal/engine/gpu/gputest"
)

func TestNewContextCapturesInfo(t *testing.T) {
	ctx, fake := gputest.NewContext(t, 800, 600)

	info := ctx.Info()
	if info.Vendor != "gputest" {
		t.Errorf("vendor = %q, want gputest", info.Vendor)
	}
	if info.Version != fake.Strings[gpu.Version] {
		t.Errorf("version = %q, want %q", info.Version, fake.Strings[gpu.Version])
	}
	if ctx.GL() != gpu.Functions(fake) {
		t.Error("GL() should return the wrapped function table")
	}
	if !ctx.OnOwnerThread() {
		t.Error("creating goroutine should own the context")
	}
	ctx.CheckThread()
}

func TestViewportGuardRestores(t *testing.T) {
	fake := gputest.New(1024, 768)

	guard := gpu.SaveViewport(fake)
	fake.Viewport(10, 20, 30, 40)
	guard.Restore()

	if got := fake.GetViewport(); got != [4]int32{0, 0, 1024, 768} {
		t.Errorf("viewport after restore = %v", got)
	}
	if guard.Saved() != [4]int32{0, 0, 1024, 768} {
		t.Errorf("saved = %v", guard.Saved())
	}

	calls := len(fake.ViewportCalls)
	guard.Restore()
	if len(fake.ViewportCalls) != calls {
		t.Error("second Restore should be a no-op")
	}
}

func TestViewportGuardRestoresOnPanic(t *testing.T) {
	fake := gputest.New(640, 480)

	func() {
		defer func() { _ = recover() }()
		guard := gpu.SaveViewport(fake)
		defer guard.Restore()
		fake.Viewport(1, 2, 3, 4)
		panic("draw failed")
	}()

	if got := fake.GetViewport(); got != [4]int32{0, 0, 640, 480} {
		t.Errorf("viewport after panic = %v", got)
	}
}
