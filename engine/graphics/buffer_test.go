package graphics

import "testing"

func TestShouldRealloc(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		n        int
		want     bool
	}{
		{"fits exactly", 100, 100, false},
		{"grow by one", 100, 101, true},
		{"shrink within window", 100, 99, false},
		{"shrink to half", 100, 50, false},
		{"shrink below half", 100, 49, true},
		{"empty into small buffer", 1, 0, false},
		{"empty into larger buffer", 2, 0, true},
		{"first fill", 0, 10, true},
	}
	for _, tt := range tests {
		if got := shouldRealloc(tt.capacity, tt.n); got != tt.want {
			t.Errorf("%s: shouldRealloc(%d, %d) = %v, want %v",
				tt.name, tt.capacity, tt.n, got, tt.want)
		}
	}
}

// TestReallocSequence walks a capacity through a series of item counts and
// checks reallocation happens exactly at growth past capacity and shrink
// below half capacity.
func TestReallocSequence(t *testing.T) {
	capacity := 100
	steps := []struct {
		n       int
		realloc bool
	}{
		{100, false}, // fills existing allocation
		{101, true},  // grows past capacity
		{99, false},  // shrink stays inside the window
		{150, true},  // grows again
		{60, true},   // below half of 150
	}
	for i, s := range steps {
		got := shouldRealloc(capacity, s.n)
		if got != s.realloc {
			t.Fatalf("step %d (n=%d, cap=%d): realloc = %v, want %v", i, s.n, capacity, got, s.realloc)
		}
		if got {
			capacity = s.n
		}
	}
	if capacity != 60 {
		t.Errorf("final capacity = %d, want 60", capacity)
	}
}
