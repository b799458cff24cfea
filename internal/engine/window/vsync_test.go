package window_test

import (
	"errors"
	"testing"

	"github.com/Faultbox/cubeview/internal/engine/window"
	"github.com/Faultbox/cubeview/internal/engine/window/windowtest"
)

func TestParseVSync(t *testing.T) {
	tests := []struct {
		in      string
		want    window.VSyncMode
		wantErr bool
	}{
		{"", window.VSyncOff, false},
		{"auto", window.VSyncAuto, false},
		{"off", window.VSyncOff, false},
		{"ON", window.VSyncOn, false},
		{" adaptive ", window.VSyncAdaptive, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := window.ParseVSync(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVSync(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVSync(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveVSync(t *testing.T) {
	noVSync := []string{"wayland"}
	tests := []struct {
		name   string
		mode   window.VSyncMode
		driver string
		want   window.VSyncMode
	}{
		{"auto on x11", window.VSyncAuto, "x11", window.VSyncOn},
		{"auto on wayland", window.VSyncAuto, "wayland", window.VSyncOff},
		{"auto case insensitive", window.VSyncAuto, "Wayland", window.VSyncOff},
		{"forced on wayland", window.VSyncOn, "wayland", window.VSyncOn},
		{"off on x11", window.VSyncOff, "x11", window.VSyncOff},
		{"adaptive kept", window.VSyncAdaptive, "cocoa", window.VSyncAdaptive},
		{"unset is off", "", "x11", window.VSyncOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.Resolve(tt.driver, noVSync); got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInitializeAppliesVSync(t *testing.T) {
	tests := []struct {
		name         string
		driver       string
		mode         window.VSyncMode
		intervalErrs map[int]error
		wantMode     window.VSyncMode
		wantInterval int
	}{
		{"unset x11", "x11", "", nil, window.VSyncOff, 0},
		{"auto x11", "x11", window.VSyncAuto, nil, window.VSyncOn, 1},
		{"auto wayland", "wayland", window.VSyncAuto, nil, window.VSyncOff, 0},
		{"adaptive", "x11", window.VSyncAdaptive, nil, window.VSyncAdaptive, -1},
		{
			"adaptive falls back", "x11", window.VSyncAdaptive,
			map[int]error{-1: errors.New("late swap tearing unsupported")},
			window.VSyncOn, 1,
		},
		{
			"failure ignored", "x11", window.VSyncOn,
			map[int]error{1: errors.New("no vsync")},
			window.VSyncOn, -2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := windowtest.New(t)
			p.Driver = tt.driver
			p.SwapIntervalErr = tt.intervalErrs
			m := window.NewManager(p)

			res, err := m.Initialize(window.Options{VSync: tt.mode, NoVSyncDrivers: []string{"wayland"}})
			if err != nil {
				t.Fatalf("Initialize: %v", err)
			}
			if res.VSync != tt.wantMode {
				t.Errorf("applied vsync = %q, want %q", res.VSync, tt.wantMode)
			}
			if p.Surface.Interval != tt.wantInterval {
				t.Errorf("interval = %d, want %d", p.Surface.Interval, tt.wantInterval)
			}
		})
	}
}
