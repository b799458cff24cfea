// Package ui lays out the viewer window: menu bar, toolbar, the 3D
// viewport and the status bar.
package ui

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/config"
	"github.com/Faultbox/cubeview/internal/engine/ui2d"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/pkg/math"
)

const barHeight = 32

// State is the animation and status state the layout reads and edits.
type State interface {
	Playing() bool
	TogglePlay() bool
	Step()
	Reset()
	Frame() uint64
	Rotation() float32
	SetMouse(x, y float32)
	SetStatus(text string)
	SetCurrentFile(path string)
	StatusLine() string
}

// Viewport embeds 3D content in a layout.
type Viewport interface {
	Show(ui *ui2d.Layout, rect math.Rect, rotation float32) ui2d.Response
}

// Action is what the frame loop should do after the layout.
type Action struct {
	Exit bool
}

// AboutText is shown by Help > About.
func AboutText() string {
	return fmt.Sprintf("%s v%s", config.AppName, config.Version)
}

// Show lays out one frame. It must run between ctx.Begin and ctx.End.
func Show(ctx *ui2d.Context, state State, vp Viewport, picker FilePicker) Action {
	var action Action

	if res, ok := picker.Poll(); ok {
		applyPick(state, res)
	}

	in := ctx.Input()
	state.SetMouse(in.MouseX, in.MouseY)

	showMenu(ctx, state, picker, &action)
	showToolbar(ctx, state, picker)

	// The status bar is reserved before the central panel so the viewport
	// gets exactly the space between the bars.
	ctx.BottomPanel("status_bar", barHeight, func(ui *ui2d.Layout) {
		ui.Label(state.StatusLine())
	})

	ctx.CentralPanel("central", func(ui *ui2d.Layout) {
		vp.Show(ui, ui.AvailableRect(), state.Rotation())
	})

	return action
}

func showMenu(ctx *ui2d.Context, state State, picker FilePicker, action *Action) {
	ctx.TopPanel("menu_bar", barHeight, func(ui *ui2d.Layout) {
		ui.MenuButton("file", "File", func(menu *ui2d.Layout) {
			if menu.Button("open", "Open") {
				picker.Open()
			}
			menu.Separator()
			if menu.Button("exit", "Exit") {
				action.Exit = true
			}
		})
		ui.MenuButton("help", "Help", func(menu *ui2d.Layout) {
			if menu.Button("about", "About") {
				state.SetStatus(AboutText())
			}
		})
	})
}

func showToolbar(ctx *ui2d.Context, state State, picker FilePicker) {
	ctx.TopPanel("toolbar", barHeight, func(ui *ui2d.Layout) {
		if ui.Button("open", "Open") {
			picker.Open()
		}

		ui.Separator()

		label := "Play"
		if state.Playing() {
			label = "Pause"
		}
		if ui.Button("play", label) {
			if state.TogglePlay() {
				state.SetStatus("Playing")
			} else {
				state.SetStatus("Paused")
			}
		}

		if ui.Button("step", "Step") {
			state.Step()
			state.SetStatus(fmt.Sprintf("Stepped to frame %d", state.Frame()))
		}

		if ui.Button("reset", "Reset") {
			state.Reset()
			state.SetStatus("Reset")
		}
	})
}

func applyPick(state State, res PickResult) {
	switch {
	case res.Err != nil:
		logger.Warn("file dialog failed", zap.Error(res.Err))
		state.SetStatus("File open failed: " + res.Err.Error())
	case res.Path == "":
		state.SetStatus("File open cancelled")
	default:
		logger.Info("file opened", zap.String("path", res.Path))
		state.SetCurrentFile(res.Path)
	}
}
