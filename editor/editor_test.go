package editor

import (
	"testing"

	"github.com/pepijnd/planetary/engine"
	"github.com/pepijnd/planetary/ui"
)

func TestNextSample(t *testing.T) {
	tests := []struct {
		current uint32
		want    uint32
	}{
		{1, 2},
		{2, 4},
		{4, 8},
		{8, 1},
		{3, 1}, // not in the cycle: restart at the beginning
		{0, 1},
	}
	for _, tt := range tests {
		if got := nextSample(tt.current); got != tt.want {
			t.Errorf("nextSample(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

// A newer cursor position replaces the tracked one; the next copy snapshots
// only the latest.
func TestPickerTrackReplacesCursor(t *testing.T) {
	p := &Picker{}

	p.Track(10, 20)
	p.Track(30, 40)

	if p.cursor == nil {
		t.Fatal("no tracked cursor after Track")
	}
	if p.cursor.x != 30 || p.cursor.y != 40 {
		t.Errorf("tracked cursor = (%d, %d), want (30, 40)", p.cursor.x, p.cursor.y)
	}
	if p.inFlight != nil {
		t.Error("Track alone put a copy in flight; only Copy may do that")
	}
}

// With no copy in flight, Resolve is a no-op that never touches the GPU.
func TestPickerResolveWithoutCopy(t *testing.T) {
	p := &Picker{}
	p.Track(5, 5)

	index, ok, err := p.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ok || index != 0 {
		t.Errorf("Resolve = (%d, %v), want (0, false)", index, ok)
	}
}

// While the overlay holds the keyboard, the editor's own bindings must not
// fire; releasing it restores them.
func TestOverlayKeyboardGating(t *testing.T) {
	const keyTab = 258

	panel := ui.NewPanel(200, 100)
	e := &Editor{
		overlay: panel,
		uiState: ui.NewState(1, 3, 1.0, 1, 0.5),
	}

	e.HandleEvent(engine.KeyEvent{Key: keyTab, Pressed: true})
	e.HandleEvent(engine.KeyEvent{Key: keyZ, Pressed: true})
	if got := e.uiState.Depth.Get(); got != 3 {
		t.Fatalf("depth binding fired while overlay held the keyboard: depth = %d", got)
	}

	e.HandleEvent(engine.KeyEvent{Key: keyTab, Pressed: true})
	e.HandleEvent(engine.KeyEvent{Key: keyZ, Pressed: true})
	if got := e.uiState.Depth.Get(); got != 2 {
		t.Fatalf("depth binding did not fire after the overlay released: depth = %d", got)
	}
}

// A draw count change must invalidate the recorded bundle even when the
// underlying allocation is reused.
func TestDataIDTracksLength(t *testing.T) {
	if dataID(3, 100) == dataID(3, 99) {
		t.Error("length change did not change the data ID")
	}
	if dataID(3, 100) == dataID(4, 100) {
		t.Error("generation change did not change the data ID")
	}
	if dataID(3, 100) != dataID(3, 100) {
		t.Error("identical inputs produced different data IDs")
	}
}

func TestBoolToBlend(t *testing.T) {
	if got := boolToBlend(true); got != 1 {
		t.Errorf("boolToBlend(true) = %g, want 1", got)
	}
	if got := boolToBlend(false); got != 0 {
		t.Errorf("boolToBlend(false) = %g, want 0", got)
	}
}
