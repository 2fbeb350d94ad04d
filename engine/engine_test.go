package engine

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestQueuePushWait(t *testing.T) {
	q := NewQueue()
	q.Push(ScrollEvent{Delta: 1})
	q.Push(MouseMoveEvent{X: 3, Y: 4})

	evs := q.Wait()
	if len(evs) != 2 {
		t.Fatalf("Wait returned %d events, want 2", len(evs))
	}
	if _, ok := evs[0].(ScrollEvent); !ok {
		t.Errorf("events out of order: first is %T", evs[0])
	}
	if mv, ok := evs[1].(MouseMoveEvent); !ok || mv.X != 3 || mv.Y != 4 {
		t.Errorf("second event = %#v, want MouseMoveEvent{3 4}", evs[1])
	}
}

func TestQueueWaitBlocksUntilPush(t *testing.T) {
	q := NewQueue()

	var wg sync.WaitGroup
	wg.Add(1)
	got := make(chan []Event, 1)
	go func() {
		defer wg.Done()
		got <- q.Wait()
	}()

	// Give the waiter time to block, then wake it with a push.
	time.Sleep(10 * time.Millisecond)
	q.Push(KeyEvent{Key: 65, Pressed: true})
	wg.Wait()

	evs := <-got
	if len(evs) != 1 {
		t.Fatalf("Wait returned %d events, want 1", len(evs))
	}
}

func TestQueueCloseWakesWaiters(t *testing.T) {
	q := NewQueue()
	done := make(chan []Event, 1)
	go func() {
		done <- q.Wait()
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case evs := <-done:
		if evs != nil {
			t.Errorf("Wait on closed empty queue = %v, want nil", evs)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Close")
	}

	// Pushes after close are dropped.
	q.Push(ScrollEvent{})
	if evs := q.Wait(); evs != nil {
		t.Errorf("push after close queued %v", evs)
	}
}

func TestClassifyFrameError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want frameAction
	}{
		{"no error", nil, frameOK},
		{"surface lost", errors.New("Surface was Lost"), frameResize},
		{"surface outdated", errors.New("the surface is outdated"), frameResize},
		{"acquire timeout", errors.New("surface timed out"), frameResize},
		{"out of memory", errors.New("OutOfMemory"), frameDrop},
		{"out of memory spaced", errors.New("device out of memory"), frameDrop},
		{"unknown", errors.New("validation error"), frameSkip},
	}
	for _, tt := range tests {
		if got := classifyFrameError(tt.err); got != tt.want {
			t.Errorf("%s: classifyFrameError(%v) = %v, want %v", tt.name, tt.err, got, tt.want)
		}
	}
}

func TestClockFPS(t *testing.T) {
	c := NewClock()
	if c.FPS() != 0 {
		t.Errorf("FPS before any tick = %v, want 0", c.FPS())
	}
	if dt := c.Tick(); dt != 0 {
		t.Errorf("first Tick = %v, want 0", dt)
	}

	for i := 0; i < 10; i++ {
		time.Sleep(time.Millisecond)
		if dt := c.Tick(); dt <= 0 {
			t.Fatalf("tick %d interval = %v, want > 0", i, dt)
		}
	}

	fps := c.FPS()
	if fps <= 0 {
		t.Fatalf("FPS = %v, want > 0", fps)
	}
	// 1ms sleeps cannot exceed 1000 FPS.
	if fps > 1000 {
		t.Errorf("FPS = %v, implausible for 1ms ticks", fps)
	}
}
