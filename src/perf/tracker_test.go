package perf

import (
	"testing"
	"time"
)

// fixedClock lets tests step through seconds deterministically.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }

func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker() (*Tracker, *fixedClock) {
	clock := &fixedClock{t: time.Unix(1_700_000_000, 0)}
	tr := NewTracker()
	tr.now = clock.now
	return tr, clock
}

func TestTrackerCountsTotal(t *testing.T) {
	tr, _ := newTestTracker()

	for i := 0; i < 5; i++ {
		tr.RecordSubmission()
	}
	if tr.Total() != 5 {
		t.Errorf("Expected total 5, got: %d", tr.Total())
	}
}

func TestTrackerCurrentIsPreviousFullSecond(t *testing.T) {
	tr, clock := newTestTracker()

	for i := 0; i < 120; i++ {
		tr.RecordSubmission()
	}
	// still inside the first second: no full second completed yet
	if got := tr.CurrentPerSec(); got != 0 {
		t.Errorf("Expected 0 before a full second elapsed, got: %f", got)
	}

	clock.advance(time.Second)
	if got := tr.CurrentPerSec(); got != 120 {
		t.Errorf("Expected 120 orders/sec, got: %f", got)
	}

	// another quiet second and the rate decays to zero
	clock.advance(time.Second)
	if got := tr.CurrentPerSec(); got != 0 {
		t.Errorf("Expected rate to decay to 0, got: %f", got)
	}
}

func TestTrackerPeakNeverDecreases(t *testing.T) {
	tr, clock := newTestTracker()

	for i := 0; i < 100; i++ {
		tr.RecordSubmission()
	}
	clock.advance(time.Second)
	tr.RecordSubmission() // recomputation sees the 100/s second

	if got := tr.PeakPerSec(); got != 100 {
		t.Errorf("Expected peak 100, got: %f", got)
	}

	// a slower second must not lower the peak
	clock.advance(time.Second)
	tr.RecordSubmission()
	if got := tr.PeakPerSec(); got != 100 {
		t.Errorf("Peak must be monotonic, got: %f", got)
	}
}

func TestTrackerPeakRaisedOnRead(t *testing.T) {
	tr, clock := newTestTracker()

	// a burst followed by silence: no further writes recompute the rate
	for i := 0; i < 120; i++ {
		tr.RecordSubmission()
	}
	clock.advance(time.Second)

	snap := tr.Snapshot()
	if snap.CurrentPerSec != 120 {
		t.Fatalf("Expected current 120, got: %f", snap.CurrentPerSec)
	}
	if snap.PeakPerSec < snap.CurrentPerSec {
		t.Errorf("Peak must cover any observed current, got: current=%f peak=%f",
			snap.CurrentPerSec, snap.PeakPerSec)
	}
	if got := tr.PeakPerSec(); got != 120 {
		t.Errorf("Expected peak 120 after the read, got: %f", got)
	}
}

func TestTrackerSnapshotIncludesQueueDepth(t *testing.T) {
	tr, clock := newTestTracker()
	tr.SetQueueDepthSource(func() (int64, int64) { return 3, 17 })

	for i := 0; i < 10; i++ {
		tr.RecordSubmission()
	}
	clock.advance(time.Second)

	snap := tr.Snapshot()
	if snap.TotalProcessed != 10 {
		t.Errorf("Expected total 10, got: %d", snap.TotalProcessed)
	}
	if snap.CurrentPerSec != 10 {
		t.Errorf("Expected current 10, got: %f", snap.CurrentPerSec)
	}
	if snap.QueueDepth != 3 || snap.QueueDepthMax != 17 {
		t.Errorf("Expected queue depth (3, 17), got: (%d, %d)",
			snap.QueueDepth, snap.QueueDepthMax)
	}
}

func TestMetricsHandlerServes(t *testing.T) {
	tr, _ := newTestTracker()
	tr.SetQueueDepthSource(func() (int64, int64) { return 0, 0 })

	handler := NewMetricsHandler(tr, func() int { return 2 })
	if handler == nil {
		t.Fatal("Expected a metrics handler")
	}

	// constructing twice must not panic on duplicate registration
	if h := NewMetricsHandler(tr, nil); h == nil {
		t.Fatal("Expected a second independent handler")
	}
}
