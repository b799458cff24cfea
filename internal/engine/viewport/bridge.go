// Package viewport embeds the 3D renderer in a region of the 2D UI.
package viewport

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/engine/renderer"
	"github.com/Faultbox/cubeview/internal/engine/ui2d"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/pkg/math"
)

// Bridge borrows a renderer for the duration of a frame. It must not
// outlive the renderer.
type Bridge struct {
	renderer *renderer.Renderer
}

// NewBridge creates a bridge over r.
func NewBridge(r *renderer.Renderer) *Bridge {
	return &Bridge{renderer: r}
}

// Show allocates rect in ui and registers one paint callback that draws
// the cube there at the given rotation.
func (b *Bridge) Show(ui *ui2d.Layout, rect math.Rect, rotation float32) ui2d.Response {
	resp := ui.AllocateRect(rect)
	ui.AddCallback(resp.Rect, func(info ui2d.CallbackInfo) {
		if err := b.Render(info.Rect, rotation); err != nil {
			logger.Warn("viewport render failed", zap.Error(err))
		}
	})
	return resp
}

// Render draws the cube into rect. Degenerate rects are skipped. The GPU
// viewport is the same before and after the call.
func (b *Bridge) Render(rect math.Rect, rotation float32) error {
	err := b.renderer.RenderViewport(rect, rotation)
	if errors.Is(err, renderer.ErrDegenerateRect) {
		logger.Debug("viewport skipped, empty rect",
			zap.Float32("width", rect.W),
			zap.Float32("height", rect.H),
		)
		return nil
	}
	return err
}
