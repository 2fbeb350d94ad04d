package engine

import (
	"time"

	"github.com/pepijnd/planetary/engine/window"
)

// EngineBuilderOption is a functional option for configuring an engine.
// Use the With* functions to create options.
type EngineBuilderOption func(e *engine)

// WithWindow attaches the window whose callbacks feed the event queue.
//
// Parameters:
//   - w: the window to drive
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRunner attaches the application the engine drives.
//
// Parameters:
//   - r: the runner receiving events, updates and render calls
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRunner(r Runner) EngineBuilderOption {
	return func(e *engine) {
		e.runner = r
	}
}

// WithTickRate sets the update loop rate in ticks per second.
//
// Parameters:
//   - tps: ticks per second (defaults to 100 if <= 0)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engine) {
		if tps <= 0 {
			tps = 100
		}
		e.tickRate = time.Duration(float64(time.Second) / tps)
	}
}
