package window

import (
	"fmt"
	"slices"
	"strings"
)

// VSyncMode selects the swap interval.
type VSyncMode string

const (
	VSyncOff      VSyncMode = "off"
	VSyncOn       VSyncMode = "on"
	VSyncAdaptive VSyncMode = "adaptive"
	// VSyncAuto is VSyncOff on drivers known to block in swap and VSyncOn
	// elsewhere.
	VSyncAuto VSyncMode = "auto"
)

// ParseVSync parses a config value. An empty string means VSyncOff.
func ParseVSync(s string) (VSyncMode, error) {
	switch m := VSyncMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return VSyncOff, nil
	case VSyncOff, VSyncOn, VSyncAdaptive, VSyncAuto:
		return m, nil
	default:
		return "", fmt.Errorf("unknown vsync mode %q", s)
	}
}

// Resolve turns VSyncAuto into a concrete mode for the given video driver.
// The zero mode resolves to VSyncOff; other modes are returned unchanged.
func (m VSyncMode) Resolve(driver string, noVSyncDrivers []string) VSyncMode {
	switch m {
	case "":
		return VSyncOff
	case VSyncAuto:
	default:
		return m
	}
	driver = strings.ToLower(driver)
	if slices.ContainsFunc(noVSyncDrivers, func(d string) bool {
		return strings.ToLower(d) == driver
	}) {
		return VSyncOff
	}
	return VSyncOn
}

// Interval is the swap interval for a resolved mode.
func (m VSyncMode) Interval() int {
	switch m {
	case VSyncOn:
		return 1
	case VSyncAdaptive:
		return -1
	default:
		return 0
	}
}
