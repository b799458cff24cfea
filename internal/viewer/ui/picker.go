package ui

import (
	"errors"
	"sync/atomic"

	"github.com/sqweek/dialog"
)

// PickResult is the outcome of a file dialog. An empty Path with a nil Err
// means the user cancelled.
type PickResult struct {
	Path string
	Err  error
}

// FilePicker opens a file chooser without blocking the frame loop.
type FilePicker interface {
	// Open starts a dialog unless one is already showing.
	Open()
	// Poll returns a finished result, if any.
	Poll() (PickResult, bool)
}

// DialogPicker shows the native open dialog on its own goroutine and hands
// the result back through a channel drained by Poll on the UI thread.
type DialogPicker struct {
	startDir string
	load     func(startDir string) (string, error)
	results  chan PickResult
	showing  atomic.Bool
}

// NewDialogPicker returns a picker that starts in startDir, if set.
func NewDialogPicker(startDir string) *DialogPicker {
	return &DialogPicker{
		startDir: startDir,
		load:     loadWithDialog,
		results:  make(chan PickResult, 1),
	}
}

func (p *DialogPicker) Open() {
	if !p.showing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		path, err := p.load(p.startDir)
		if errors.Is(err, dialog.ErrCancelled) {
			path, err = "", nil
		}
		p.results <- PickResult{Path: path, Err: err}
	}()
}

func (p *DialogPicker) Poll() (PickResult, bool) {
	select {
	case res := <-p.results:
		p.showing.Store(false)
		return res, true
	default:
		return PickResult{}, false
	}
}

func loadWithDialog(startDir string) (string, error) {
	b := dialog.File().
		Title("Open File").
		Filter("All Files", "*").
		Filter("Text Files", "txt").
		Filter("Data Files", "json", "csv", "xml").
		Filter("Image Files", "png", "jpg", "jpeg", "bmp", "gif")
	if startDir != "" {
		b = b.SetStartDir(startDir)
	}
	return b.Load()
}
