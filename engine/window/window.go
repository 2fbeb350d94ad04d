// Package window provides platform windowing for the editor through GLFW,
// exposing input callbacks and a WebGPU surface descriptor.
package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/pepijnd/planetary/common"
)

// Button identifies a mouse button in input callbacks.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Mods is a bitmask of modifier keys held during an input event.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModCtrl
	ModAlt
)

// Window provides platform windowing and input event handling.
// Wraps the GLFW window with a backend-neutral interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is
	// resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code and held modifiers
	SetKeyDownCallback(callback func(keyCode uint32, mods Mods))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code and held modifiers
	SetKeyUpCallback(callback func(keyCode uint32, mods Mods))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button, cursor position and modifiers
	SetMouseDownCallback(callback func(button Button, x, y int32, mods Mods))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button, cursor position and modifiers
	SetMouseUpCallback(callback func(button Button, x, y int32, mods Mods))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating
	// a WebGPU surface. The descriptor is platform-appropriate (Windows HWND,
	// X11, Wayland, macOS Metal) and is created by the wgpuglfw bridge.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil if not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if running, false once closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close fails
	Close() error

	// ProcessMessages runs the window message loop on the calling goroutine,
	// which must be the main OS thread. Blocks until the window closes,
	// invoking the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// editorWindow is the implementation of the Window interface.
type editorWindow struct {
	title  string
	width  int
	height int

	internalWindow any

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32, mods Mods)
	onKeyUp     func(keyCode uint32, mods Mods)
	onMouseDown func(button Button, x, y int32, mods Mods)
	onMouseUp   func(button Button, x, y int32, mods Mods)
	onMouseMove func(x, y int32)
}

var _ Window = &editorWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: an error if platform window creation fails
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &editorWindow{}
	for _, opt := range options {
		opt(w)
	}
	w.title = common.Coalesce(w.title, "planetary")
	w.width = common.Coalesce(w.width, 1280)
	w.height = common.Coalesce(w.height, 720)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *editorWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *editorWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *editorWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *editorWindow) SetKeyDownCallback(callback func(keyCode uint32, mods Mods)) {
	w.onKeyDown = callback
}

func (w *editorWindow) SetKeyUpCallback(callback func(keyCode uint32, mods Mods)) {
	w.onKeyUp = callback
}

func (w *editorWindow) SetMouseDownCallback(callback func(button Button, x, y int32, mods Mods)) {
	w.onMouseDown = callback
}

func (w *editorWindow) SetMouseUpCallback(callback func(button Button, x, y int32, mods Mods)) {
	w.onMouseUp = callback
}

func (w *editorWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *editorWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *editorWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *editorWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *editorWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *editorWindow) Width() int {
	return w.width
}

func (w *editorWindow) Height() int {
	return w.height
}
