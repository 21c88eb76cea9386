package ticker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/me/gogrid/internal/logging"
)

// recordingTarget counts Update calls and remembers the deltas.
type recordingTarget struct {
	mu    sync.Mutex
	diffs []uint32
}

func (r *recordingTarget) Update(diff uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diffs = append(r.diffs, diff)
}

func (r *recordingTarget) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.diffs)
}

// TestTickForwardsDelta verifies the single-iteration path used for manual
// time control.
func TestTickForwardsDelta(t *testing.T) {
	target := &recordingTarget{}
	l := NewLoop(target, time.Second, logging.Discard())

	l.Tick(100)
	l.Tick(250)

	if target.count() != 2 {
		t.Fatalf("updates = %d, want 2", target.count())
	}
	if target.diffs[0] != 100 || target.diffs[1] != 250 {
		t.Errorf("diffs = %v, want [100 250]", target.diffs)
	}
}

// TestStartTicksUntilStopped verifies the loop ticks repeatedly and that
// Stop takes effect within roughly one interval.
func TestStartTicksUntilStopped(t *testing.T) {
	target := &recordingTarget{}
	l := NewLoop(target, 5*time.Millisecond, logging.Discard())

	done := make(chan error, 1)
	go func() { done <- l.Start(context.Background()) }()

	// Give the loop a few intervals to run.
	time.Sleep(40 * time.Millisecond)
	l.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned %v, want nil on Stop", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}

	n := target.count()
	if n < 2 {
		t.Errorf("updates = %d, want at least 2", n)
	}
	// No further ticks after Stop returned.
	time.Sleep(20 * time.Millisecond)
	if target.count() != n {
		t.Errorf("loop ticked after Stop: %d -> %d", n, target.count())
	}
}

// TestStartHonorsContext verifies cancellation stops the loop and surfaces
// the context error.
func TestStartHonorsContext(t *testing.T) {
	target := &recordingTarget{}
	l := NewLoop(target, 5*time.Millisecond, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Start(ctx) }()

	time.Sleep(15 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

// TestDefaultInterval verifies the fallback for non-positive intervals.
func TestDefaultInterval(t *testing.T) {
	l := NewLoop(&recordingTarget{}, 0, logging.Discard())
	if l.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", l.interval, DefaultInterval)
	}
}
