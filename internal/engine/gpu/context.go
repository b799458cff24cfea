package gpu

import "fmt"

// Info describes the driver behind a context.
type Info struct {
	Vendor          string
	Renderer        string
	Version         string
	ShadingLanguage string
}

// Context is the process-wide graphics context: the loaded function table
// plus the OS thread it belongs to. It is created once by the window
// manager after the platform context is current and shared read-only with
// everything that issues GPU calls.
type Context struct {
	fns      Functions
	info     Info
	threadID int
	checked  bool
}

// NewContext wraps a function table and binds it to the calling OS thread.
// The caller must have locked its goroutine to that thread.
func NewContext(fns Functions) *Context {
	c := &Context{fns: fns}
	c.threadID, c.checked = currentThreadID()
	c.info = Info{
		Vendor:          fns.GetString(Vendor),
		Renderer:        fns.GetString(Renderer),
		Version:         fns.GetString(Version),
		ShadingLanguage: fns.GetString(ShadingLanguageVersion),
	}
	return c
}

// GL returns the function table.
func (c *Context) GL() Functions {
	return c.fns
}

// Info returns the driver strings captured at creation.
func (c *Context) Info() Info {
	return c.info
}

// OnOwnerThread reports whether the caller runs on the context's thread.
// It is always true on platforms without a thread id.
func (c *Context) OnOwnerThread() bool {
	if !c.checked {
		return true
	}
	id, ok := currentThreadID()
	return !ok || id == c.threadID
}

// CheckThread panics when called off the context's thread. GPU calls from
// another thread are undefined behaviour in every driver, so this is a
// programming error rather than a returned condition.
func (c *Context) CheckThread() {
	if !c.OnOwnerThread() {
		id, _ := currentThreadID()
		panic(fmt.Sprintf("gpu: context owned by thread %d used from thread %d", c.threadID, id))
	}
}
