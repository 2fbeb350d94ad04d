// Package engine runs the editor's three loops: the main-thread window and
// render loop, a fixed-rate update goroutine, and an event dispatch goroutine
// feeding queued input to the runner.
package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/pepijnd/planetary/engine/window"
	"github.com/pepijnd/planetary/logger"
)

// Runner is the application driven by the engine. The editor implements it.
// HandleEvent and Update run on engine goroutines while Render runs on the
// main thread, so implementations guard shared state.
type Runner interface {
	// HandleEvent processes one queued input or window event.
	HandleEvent(ev Event)

	// Update advances application state. Called at the configured tick rate
	// with the elapsed time in seconds.
	Update(dt float32)

	// Render draws one frame. Surface errors are returned for the engine to
	// classify; anything else is the runner's own failure.
	Render() error

	// Resize reconfigures render resources for a new framebuffer size. The
	// engine calls this from the render thread when the surface is lost or
	// outdated.
	Resize(width, height int)
}

// frameAction is the render loop's response to a frame error.
type frameAction int

const (
	frameOK frameAction = iota
	// frameResize reconfigures the surface before the next frame.
	frameResize
	// frameDrop skips the frame without noise; retrying immediately would
	// not help and the condition clears on its own.
	frameDrop
	// frameSkip drops the frame and tries again next iteration.
	frameSkip
)

// classifyFrameError sorts surface acquisition failures by recovery action.
// A lost or outdated surface is rebuilt by reconfiguring at the current
// window size; out-of-memory and anything unrecognized skip the frame.
func classifyFrameError(err error) frameAction {
	if err == nil {
		return frameOK
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "lost"),
		strings.Contains(msg, "outdated"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "timed out"):
		return frameResize
	case strings.Contains(msg, "out of memory"),
		strings.Contains(msg, "outofmemory"):
		return frameDrop
	default:
		return frameSkip
	}
}

// engine implements the Engine interface. It owns the event queue between
// the window callbacks and the runner.
type engine struct {
	window window.Window
	runner Runner
	queue  *Queue

	tickRate time.Duration

	wg       sync.WaitGroup
	quit     chan struct{}
	quitOnce sync.Once
}

// Engine wires a window to a Runner and drives the update and render loops.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Run starts the update and dispatch goroutines, then blocks on the
	// main-thread render loop until the window closes.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine with the provided options and registers the
// window callbacks that feed the event queue.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the configured engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		queue:    NewQueue(),
		quit:     make(chan struct{}),
		tickRate: time.Second / 100,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.queue.Push(ResizeEvent{Width: width, Height: height})
		})
		e.window.SetMouseMoveCallback(func(x, y int32) {
			e.queue.Push(MouseMoveEvent{X: x, Y: y})
		})
		e.window.SetMouseDownCallback(func(button window.Button, x, y int32, mods window.Mods) {
			e.queue.Push(MouseButtonEvent{Button: button, Pressed: true, X: x, Y: y, Mods: mods})
		})
		e.window.SetMouseUpCallback(func(button window.Button, x, y int32, mods window.Mods) {
			e.queue.Push(MouseButtonEvent{Button: button, Pressed: false, X: x, Y: y, Mods: mods})
		})
		e.window.SetScrollCallback(func(delta float32) {
			e.queue.Push(ScrollEvent{Delta: delta})
		})
		e.window.SetKeyDownCallback(func(keyCode uint32, mods window.Mods) {
			e.queue.Push(KeyEvent{Key: keyCode, Pressed: true, Mods: mods})
		})
		e.window.SetKeyUpCallback(func(keyCode uint32, mods window.Mods) {
			e.queue.Push(KeyEvent{Key: keyCode, Pressed: false, Mods: mods})
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.wg.Add(2)
	go e.handleEvents()
	go e.handleUpdate()

	e.window.SetUpdateCallback(e.renderFrame)
	e.window.ProcessMessages()

	e.Quit()
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop.
// Safe to call multiple times; subsequent calls are no-ops.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quit)
		e.queue.Close()
	})
}

// handleEvents drains the queue and forwards each event to the runner.
// Blocks in Wait between batches; exits once the queue closes and empties.
func (e *engine) handleEvents() {
	defer e.wg.Done()

	for {
		evs := e.queue.Wait()
		if evs == nil {
			return
		}
		for _, ev := range evs {
			e.runner.HandleEvent(ev)
		}
	}
}

// handleUpdate runs the fixed-rate update loop in its own goroutine.
func (e *engine) handleUpdate() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.tickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quit:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.runner.Update(dt)
		}
	}
}

// renderFrame draws one frame on the main thread and recovers from surface
// errors where possible.
func (e *engine) renderFrame() {
	err := e.runner.Render()
	switch classifyFrameError(err) {
	case frameOK:
	case frameResize:
		logger.Sugar.Warnw("surface lost, reconfiguring", "error", err)
		e.runner.Resize(e.window.Width(), e.window.Height())
	case frameDrop:
		logger.Sugar.Debugw("dropping frame", "error", err)
	case frameSkip:
		logger.Sugar.Warnw("skipping frame", "error", err)
	}
}
