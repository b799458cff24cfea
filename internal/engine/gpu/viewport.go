package gpu

// ViewportGuard holds a saved viewport until Restore is called. Use it as
//
//	guard := gpu.SaveViewport(fns)
//	defer guard.Restore()
//
// so the viewport is put back on every exit path, panics included.
type ViewportGuard struct {
	fns   Functions
	saved [4]int32
	done  bool
}

// SaveViewport snapshots the current viewport.
func SaveViewport(fns Functions) *ViewportGuard {
	return &ViewportGuard{fns: fns, saved: fns.GetViewport()}
}

// Saved returns the snapshot.
func (g *ViewportGuard) Saved() [4]int32 {
	return g.saved
}

// Restore puts the saved viewport back. Calls after the first are no-ops.
func (g *ViewportGuard) Restore() {
	if g.done {
		return
	}
	g.done = true
	g.fns.Viewport(g.saved[0], g.saved[1], g.saved[2], g.saved[3])
}
