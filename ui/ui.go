// Package ui holds the editor's adjustable state and the overlay seam
// between input handling and rendering. Values track their own dirty flag so
// the editor can react to changes exactly once per update tick.
package ui

// Value is a settable value with a consumed-on-read change flag.
type Value[T comparable] struct {
	value   T
	changed bool
}

// NewValue returns a Value holding v with the change flag clear.
func NewValue[T comparable](v T) Value[T] {
	return Value[T]{value: v}
}

// Get returns the current value without touching the change flag.
func (v *Value[T]) Get() T {
	return v.value
}

// Set stores val and marks the value changed if it differs from the current
// value. Setting the same value again is a no-op.
func (v *Value[T]) Set(val T) {
	if v.value == val {
		return
	}
	v.value = val
	v.changed = true
}

// OnChange calls fn with the current value if it changed since the last
// OnChange, then clears the flag. At most one handler run per change.
func (v *Value[T]) OnChange(fn func(T)) {
	if !v.changed {
		return
	}
	v.changed = false
	fn(v.value)
}

// State is the full set of editor controls plus the read-only values the
// overlay displays.
type State struct {
	Samples     Value[uint32]
	Depth       Value[int]
	Zoom        Value[float32]
	Perspective Value[float32]
	LightMix    Value[float32]

	// Selected is the currently picked face index, 0 for none. Display only.
	Selected uint32
	// FPS is the smoothed frame rate for display.
	FPS float64
}

// NewState returns editor state seeded with the given defaults.
func NewState(samples uint32, depth int, zoom, perspective, lightMix float32) *State {
	return &State{
		Samples:     NewValue(samples),
		Depth:       NewValue(depth),
		Zoom:        NewValue(zoom),
		Perspective: NewValue(perspective),
		LightMix:    NewValue(lightMix),
	}
}

// Overlay is the editor's UI layer. Implementations decide whether the mouse
// or keyboard is captured by UI widgets; input the overlay claims must not
// reach camera or picking. The editor forwards cursor and key events before
// consulting the capture queries.
type Overlay interface {
	// HandleCursor observes the cursor position in window coordinates.
	HandleCursor(x, y int32)

	// HandleKey observes a key press or release.
	HandleKey(key uint32, pressed bool)

	// HasMouse reports whether the overlay is capturing mouse input.
	HasMouse() bool

	// HasKeyboard reports whether the overlay is capturing keyboard input.
	HasKeyboard() bool

	// Update lets the overlay read and edit state once per update tick.
	Update(state *State)
}

// Nop is an overlay that renders nothing and captures no input.
type Nop struct{}

var _ Overlay = Nop{}

func (Nop) HandleCursor(x, y int32)          {}
func (Nop) HandleKey(key uint32, press bool) {}
func (Nop) HasMouse() bool                   { return false }
func (Nop) HasKeyboard() bool                { return false }
func (Nop) Update(state *State)              {}
