//go:build linux

package gpu

import "golang.org/x/sys/unix"

func currentThreadID() (int, bool) {
	return unix.Gettid(), true
}
