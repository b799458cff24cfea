package viewer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// rotationPerFrame is the cube rotation in radians per animation frame at
// speed 1.
const rotationPerFrame = 0.01

// State is the animation and status bar state.
type State struct {
	playing     bool
	frame       uint64
	speed       float32
	mouseX      float32
	mouseY      float32
	status      string
	currentFile string
}

// NewState returns a paused state at frame 0. Non-positive speeds mean 1.
func NewState(speed float32) *State {
	if speed <= 0 {
		speed = 1
	}
	return &State{speed: speed, status: "Ready"}
}

func (s *State) Playing() bool { return s.playing }

// SetPlaying starts or stops the animation.
func (s *State) SetPlaying(playing bool) { s.playing = playing }

// TogglePlay flips play/pause and returns the new value.
func (s *State) TogglePlay() bool {
	s.playing = !s.playing
	return s.playing
}

// Step advances one frame.
func (s *State) Step() { s.frame++ }

// Reset returns to frame 0 and pauses.
func (s *State) Reset() {
	s.frame = 0
	s.playing = false
}

func (s *State) Frame() uint64 { return s.frame }

// Rotation is the cube angle in radians for the current frame.
func (s *State) Rotation() float32 {
	return float32(s.frame) * rotationPerFrame * s.speed
}

func (s *State) SetMouse(x, y float32) {
	s.mouseX, s.mouseY = x, y
}

func (s *State) Status() string { return s.status }

func (s *State) SetStatus(text string) { s.status = text }

func (s *State) CurrentFile() string { return s.currentFile }

// SetCurrentFile records an opened file and reports it in the status.
func (s *State) SetCurrentFile(path string) {
	s.currentFile = path
	s.status = "Opened: " + filepath.Base(path)
}

// StatusLine is the status bar text.
func (s *State) StatusLine() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mouse: (%.1f, %.1f) | Frame: %d", s.mouseX, s.mouseY, s.frame)
	if s.currentFile != "" {
		b.WriteString(" | File: ")
		b.WriteString(filepath.Base(s.currentFile))
	}
	if s.status != "" {
		b.WriteString(" | ")
		b.WriteString(s.status)
	}
	return b.String()
}
