package ui

// GLFW key codes for the panel bindings.
const (
	keyTab   = 258 // toggle keyboard mode
	keyRight = 262 // nudge focused control up
	keyLeft  = 263 // nudge focused control down
	keyDown  = 264 // focus next control
	keyUp    = 265 // focus previous control
)

// control identifies one adjustable value in focus order.
type control int

const (
	ctlSamples control = iota
	ctlDepth
	ctlZoom
	ctlPerspective
	ctlLightMix
	controlCount
)

// Adjustment steps and limits, matching the editor's direct key bindings.
const (
	panelMaxDepth  = 6
	panelZoomStep  = float32(0.1)
	panelLightStep = float32(0.1)
	panelZoomMin   = float32(0.1)
	panelZoomMax   = float32(2.0)
)

// Panel is a minimal overlay without widget rendering: a hotzone in the
// window's top-left corner captures the mouse while the cursor hovers it,
// and Tab toggles a keyboard mode where the arrow keys move focus between
// the editor controls and nudge the focused one.
//
// The editor serializes all overlay calls under its own lock, so the panel
// carries no locking of its own.
type Panel struct {
	hotW int32
	hotH int32

	inside bool
	open   bool
	focus  control
	nudge  int
}

var _ Overlay = &Panel{}

// NewPanel returns a panel whose hotzone spans width by height pixels from
// the window's top-left corner.
func NewPanel(width, height int32) *Panel {
	return &Panel{hotW: width, hotH: height}
}

// HandleCursor updates whether the cursor sits inside the hotzone.
func (p *Panel) HandleCursor(x, y int32) {
	p.inside = x >= 0 && y >= 0 && x < p.hotW && y < p.hotH
}

// HandleKey drives the keyboard mode. Keys are only consumed while the mode
// is open; Tab itself always toggles.
func (p *Panel) HandleKey(key uint32, pressed bool) {
	if !pressed {
		return
	}
	switch key {
	case keyTab:
		p.open = !p.open
	case keyDown:
		if p.open {
			p.focus = (p.focus + 1) % controlCount
		}
	case keyUp:
		if p.open {
			p.focus = (p.focus + controlCount - 1) % controlCount
		}
	case keyRight:
		if p.open {
			p.nudge++
		}
	case keyLeft:
		if p.open {
			p.nudge--
		}
	}
}

// HasMouse reports whether the cursor hovers the hotzone.
func (p *Panel) HasMouse() bool {
	return p.inside
}

// HasKeyboard reports whether the keyboard mode is open.
func (p *Panel) HasKeyboard() bool {
	return p.open
}

// Update applies the nudges accumulated since the last tick to the focused
// control.
func (p *Panel) Update(state *State) {
	d := p.nudge
	p.nudge = 0
	if d == 0 {
		return
	}

	switch p.focus {
	case ctlSamples:
		s := state.Samples.Get()
		for ; d > 0; d-- {
			if s *= 2; s > 8 {
				s = 1
			}
		}
		for ; d < 0; d++ {
			if s /= 2; s < 1 {
				s = 8
			}
		}
		state.Samples.Set(s)
	case ctlDepth:
		state.Depth.Set(clampInt(state.Depth.Get()+d, 0, panelMaxDepth))
	case ctlZoom:
		state.Zoom.Set(clampF32(state.Zoom.Get()+float32(d)*panelZoomStep, panelZoomMin, panelZoomMax))
	case ctlPerspective:
		if d%2 != 0 {
			if state.Perspective.Get() > 0.5 {
				state.Perspective.Set(0)
			} else {
				state.Perspective.Set(1)
			}
		}
	case ctlLightMix:
		state.LightMix.Set(clampF32(state.LightMix.Get()+float32(d)*panelLightStep, 0, 1))
	}
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampF32(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
