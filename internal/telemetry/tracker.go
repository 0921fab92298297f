// ABOUTME: Frame throughput tracker: frames delivered, bytes consumed, rolling FPS
// ABOUTME: Concurrency-safe; the TUI footer and stats writer read snapshots

package telemetry

import (
	"sync"
	"time"
)

// fpsWindow is how far back the rolling FPS estimate looks.
const fpsWindow = 2 * time.Second

// Stats is a point-in-time snapshot of pipeline throughput.
type Stats struct {
	Frames  int
	Bytes   int64
	Elapsed time.Duration
	FPS     float64
}

// Tracker accumulates per-frame observations from the pump.
type Tracker struct {
	mu     sync.Mutex
	frames int
	bytes  int64
	start  time.Time
	recent []time.Time

	now func() time.Time // injectable clock for tests
}

// NewTracker returns a tracker using the wall clock.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// Observe records one delivered frame and the source bytes it consumed.
func (t *Tracker) Observe(frameBytes int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ts := t.now()
	if t.frames == 0 {
		t.start = ts
	}
	t.frames++
	t.bytes += int64(frameBytes)

	t.recent = append(t.recent, ts)
	t.trimLocked(ts)
}

// Snapshot returns the current throughput numbers.
func (t *Tracker) Snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	ts := t.now()
	t.trimLocked(ts)

	s := Stats{Frames: t.frames, Bytes: t.bytes}
	if t.frames > 0 {
		s.Elapsed = ts.Sub(t.start)
	}
	if n := len(t.recent); n > 1 {
		span := t.recent[n-1].Sub(t.recent[0])
		if span > 0 {
			s.FPS = float64(n-1) / span.Seconds()
		}
	}
	return s
}

// trimLocked drops rolling-window entries older than fpsWindow.
func (t *Tracker) trimLocked(now time.Time) {
	cutoff := now.Add(-fpsWindow)
	i := 0
	for i < len(t.recent) && t.recent[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		t.recent = append(t.recent[:0], t.recent[i:]...)
	}
}
