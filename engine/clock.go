package engine

import (
	"sync"
	"time"
)

// tickWindow is the number of recent frame intervals averaged for FPS.
const tickWindow = 64

// Clock measures frame pacing from a ring buffer of recent tick intervals.
// Safe for concurrent use: the render loop ticks it, the update loop reads
// the rate for display.
type Clock struct {
	mu sync.Mutex

	last    time.Time
	samples [tickWindow]time.Duration
	next    int
	filled  int
}

// NewClock returns a clock that starts measuring at its first Tick.
func NewClock() *Clock {
	return &Clock{}
}

// Tick records a frame boundary and returns the interval since the previous
// tick. The first tick returns 0.
func (c *Clock) Tick() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now

	c.samples[c.next] = dt
	c.next = (c.next + 1) % tickWindow
	if c.filled < tickWindow {
		c.filled++
	}
	return dt
}

// FPS returns the tick rate averaged over the sample window, 0 before two
// ticks have been seen.
func (c *Clock) FPS() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filled == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < c.filled; i++ {
		total += c.samples[i]
	}
	if total <= 0 {
		return 0
	}
	return float64(c.filled) / total.Seconds()
}
