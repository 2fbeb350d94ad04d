package engine

import (
	"sync"

	"github.com/pepijnd/planetary/engine/window"
)

// Event is an input or window event queued from the window callbacks to the
// dispatch goroutine.
type Event interface {
	isEvent()
}

// ResizeEvent reports a new framebuffer size in pixels.
type ResizeEvent struct {
	Width  int
	Height int
}

// MouseMoveEvent reports the cursor position in window coordinates.
type MouseMoveEvent struct {
	X int32
	Y int32
}

// MouseButtonEvent reports a button press or release with the cursor
// position and held modifiers.
type MouseButtonEvent struct {
	Button  window.Button
	Pressed bool
	X       int32
	Y       int32
	Mods    window.Mods
}

// ScrollEvent reports a scroll wheel delta, positive towards the user's
// zoom-in direction.
type ScrollEvent struct {
	Delta float32
}

// KeyEvent reports a key press (including repeats) or release.
type KeyEvent struct {
	Key     uint32
	Pressed bool
	Mods    window.Mods
}

func (ResizeEvent) isEvent()      {}
func (MouseMoveEvent) isEvent()   {}
func (MouseButtonEvent) isEvent() {}
func (ScrollEvent) isEvent()      {}
func (KeyEvent) isEvent()         {}

// Queue is a condition-guarded event queue. Window callbacks push from the
// main thread; the dispatch goroutine blocks in Wait until events arrive or
// the queue closes.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	events []Event
	closed bool
}

// NewQueue returns an empty open queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends an event and wakes a waiter. Pushing to a closed queue drops
// the event.
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.events = append(q.events, ev)
	q.cond.Signal()
}

// Wait blocks until at least one event is queued or the queue is closed, then
// returns all queued events in push order. A nil return means the queue
// closed with nothing pending.
func (q *Queue) Wait() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.events) == 0 && !q.closed {
		q.cond.Wait()
	}
	evs := q.events
	q.events = nil
	return evs
}

// Close wakes all waiters and makes further pushes no-ops. Events already
// queued are still returned by the next Wait.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
